// Package search ranks artifacts and collections of a metadata index against
// a keyword.
//
// Matching is a case-insensitive substring test under Unicode case folding.
// Every hit is placed in a relevance tier by the most significant field it
// matched: a title (or collection name) match is [TierTitle], a description
// match is [TierDescription], and a filename, collection id, or tag match is
// [TierRelated]. Ordering never depends on the order of the remote listing.
package search
