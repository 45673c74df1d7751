// Package jptext provides Japanese script utilities shared across the
// enrichment pipeline.
//
// The primary use cases are:
//   - Classifying runes by script (kanji, hiragana, katakana)
//   - Folding katakana to hiragana for reading comparison
//   - Segmenting a word into maximal kanji / non-kanji runs
//   - Deriving a romaji transcription from a kana reading
//
// Comparisons throughout the pipeline happen on hiragana-folded, NFKC
// normalized text; the helpers here centralize those conventions.
package jptext
