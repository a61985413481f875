// Package nibble provides small composable parsers for decoding fixed binary formats
// from an in-memory byte buffer.
//
// Every parser conforms to [Parser]: it receives the remaining input and returns the
// input left over after it ran, together with a value or an error. Leaf parsers like
// [Take], [Tag] or [U32LE] consume a prefix of the input. Combinators like [Seq], [Opt],
// [And], [Or] and [Finish] build larger parsers out of smaller ones. The [Decoder] type
// builds a parser for a fixed-layout struct from its fields.
package nibble
