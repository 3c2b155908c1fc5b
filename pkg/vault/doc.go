// Package vault finds candidate notes in a vault directory.
//
// A vault is a directory tree of markdown notes. [Scanner.Scan] walks it,
// skipping hidden directories such as .obsidian, .git and .trash, and returns
// one [Note] per markdown file with its vault-relative, slash-separated path.
//
// # Front Matter
//
// Each note's YAML front matter is parsed for a title, tags and aliases:
//
//	---
//	title: Reading list
//	tags: [books, to-read]
//	aliases: reading
//	---
//
// Malformed front matter is logged and ignored. Parsed metadata is cached by
// path, size and modification time, so unchanged notes are not reopened on
// the next scan.
//
// # Filtering
//
// [Filter] narrows the candidates the way a search pane would: every query
// term must appear in the path, title or an alias, and every tag must be
// present (a nested tag such as "project/alpha" satisfies "project").
//
// # Live Index
//
// [Index] keeps the latest scan in memory and refreshes it when files change,
// using fsnotify with a debounce.
package vault
