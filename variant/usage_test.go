package variant

import (
	"encoding/json"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestToken(t *testing.T) {
	cases := []struct {
		weight, style, token string
	}{
		{"400", "normal", "400"},
		{"700", "italic", "700i"},
		{"bold", "normal", "700"},
		{"normal", "italic", "400i"},
		{"", "", "400"},
		{" 300 ", "oblique 10deg", "300o"},
		{"900", "Italic", "900i"},
	}
	for _, c := range cases {
		if tok := Token(c.weight, c.style); tok != c.token {
			t.Errorf("expected Token(%q, %q) to be %q, is %q", c.weight, c.style, c.token, tok)
		}
	}
}

func TestRecordSortedAndUnique(t *testing.T) {
	faces := []Face{
		{"Georgia", "700", "normal"}, {"Georgia", "400", "italic"}, {"Georgia", "400", "normal"},
		{"Georgia", "700", "normal"}, {"Georgia", "100", "normal"}, {"Georgia", "400", "italic"},
		{"Georgia", "bold", "italic"}, {"Georgia", "normal", "normal"},
	}
	rnd := rand.New(rand.NewSource(7))
	var first []string
	for round := 0; round < 20; round++ {
		rnd.Shuffle(len(faces), func(i, j int) { faces[i], faces[j] = faces[j], faces[i] })
		u := NewUsage()
		for _, f := range faces {
			u.RecordFace(f)
			tokens := u.Variants("Georgia")
			if !sort.StringsAreSorted(tokens) {
				t.Fatalf("tokens not sorted after insert: %v", tokens)
			}
			seen := make(map[string]bool)
			for _, tok := range tokens {
				if seen[tok] {
					t.Fatalf("duplicate token %q in %v", tok, tokens)
				}
				seen[tok] = true
			}
		}
		if round == 0 {
			first = u.Variants("Georgia")
		} else {
			assert.Equal(t, first, u.Variants("Georgia"), "result must not depend on insertion order")
		}
	}
	assert.Equal(t, []string{"100", "400", "400i", "700", "700i"}, first)
}

func TestRecordExamples(t *testing.T) {
	u := NewUsage().Record("Arial", "700", "italic")
	assert.Equal(t, map[string][]string{"Arial": {"700i"}}, u.Map())
	//
	u = NewUsage().Record("Georgia", "400", "normal").Record("Georgia", "400", "italic")
	assert.Equal(t, map[string][]string{"Georgia": {"400", "400i"}}, u.Map())
}

func TestFamiliesInFirstEncounterOrder(t *testing.T) {
	u := NewUsage()
	u.Record("Zapfino", "400", "normal")
	u.Record(`"Open Sans", sans-serif`, "400", "normal")
	u.Record("Arial", "400", "normal")
	u.Record("Zapfino", "700", "normal")
	assert.Equal(t, []string{"Zapfino", `"Open Sans", sans-serif`, "Arial"}, u.Families())
	assert.Equal(t, 3, u.Len())
	assert.Nil(t, u.Variants("Helvetica"))
}

func TestCopiesAreDetached(t *testing.T) {
	u := NewUsage().Record("Arial", "400", "normal")
	tokens := u.Variants("Arial")
	tokens[0] = "X"
	m := u.Map()
	m["Arial"][0] = "Y"
	c := u.Clone()
	c.Record("Arial", "700", "normal")
	assert.Equal(t, []string{"400"}, u.Variants("Arial"))
	assert.Equal(t, []string{"400", "700"}, c.Variants("Arial"))
}

func TestMarshalKeepsFamilyOrder(t *testing.T) {
	u := NewUsage()
	u.Record("Zapfino", "400", "normal")
	u.Record("Arial", "700", "italic")
	data, err := json.Marshal(u)
	assert.NoError(t, err)
	assert.Equal(t, `{"Zapfino":["400"],"Arial":["700i"]}`, string(data))
	//
	y, err := yaml.Marshal(u)
	assert.NoError(t, err)
	t.Logf("yaml =\n%s", y)
	var back map[string][]string
	assert.NoError(t, yaml.Unmarshal(y, &back))
	assert.Equal(t, u.Map(), back)
}
