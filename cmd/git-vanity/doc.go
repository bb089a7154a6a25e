// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// git-vanity creates git commits whose object id begins or ends with a
// chosen hex string.
//
// It snapshots the index the way "git commit" would, then searches
// over the commit time and a block of whitespace appended to the
// message until the SHA-1 of the commit object matches. The search is
// spread across one goroutine per CPU; each goroutine owns a disjoint
// set of commit times, so no two try the same candidate.
//
// Subcommands:
//
//	git-vanity commit <hex> -m <message>   search, store, and move HEAD
//	git-vanity search <hex> -m <message>   search only
//	git-vanity verify [<rev>] --pattern <hex>
//	git-vanity report <path>               inspect a saved search report
//	git-vanity version
//
// Configuration is read from the YAML file named by --config or
// $GIT_VANITY_CONFIG. Flags override the file.
package main
