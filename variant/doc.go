/*
Package variant aggregates sampled font faces into a font-usage map.

A font-usage map associates every font family found while crawling a document
with the set of weight/style variants actually rendered with it. Variants are
identified by short tokens like "400", "700i" or "300o", which makes the map
directly usable for subsetting or preloading font files.

Tokens of a family are kept sorted and free of duplicates after every single
insert. Clients may therefore read a map while a crawl is still in flight and
will always observe a consistent sequence.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package variant
