// Package leitner implements the Leitner-box spaced repetition algorithm
// used to schedule kana flashcard reviews. It is a pure package: every
// function returns new values and performs no I/O, which keeps the
// scheduling policy independently testable.
package leitner
