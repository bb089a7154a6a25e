// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package padding enumerates the whitespace padding appended to a
// commit message during a vanity search.
//
// A [Token] is a short list of line widths. Rendered, each width n
// becomes a newline followed by n spaces, and every rendering ends with
// one more newline. The empty token therefore renders as a single
// "\n", the trailing blank line.
//
// A [Space] bounds the tokens: at most MaxLines lines, each narrower
// than Width. [Enumerator] walks every token in a Space in a fixed
// total order: shorter tokens first, and within one length, row-major
// order with the last line varying fastest. Two enumerators over the
// same Space always produce the same sequence, so a search that is
// re-run from the same timestamp visits the same candidates and
// reports the same try counts.
//
// With the default Space (80 columns, 4 lines) there are
// 1 + 80 + 80^2 + 80^3 + 80^4 = 41,478,481 tokens per timestamp.
package padding
