// Package domain contains the core business entities and domain logic of
// the kana learning service, independent of any specific infrastructure or
// delivery mechanism. The spaced repetition scheduling itself lives in the
// leitner subpackage.
package domain
