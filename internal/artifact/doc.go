// Package artifact defines the model of installable content hosted in a
// remote repository: single artifacts (chat modes, instructions, prompts, and
// agents) and collections that group them.
//
// An artifact is identified by its [Key], the pair of [Mode] and filename.
// Collections refer to their members by key and never embed copies, so a
// collection always resolves against the newest artifact index.
package artifact
