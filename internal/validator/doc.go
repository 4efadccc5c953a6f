// Package validator lints Copilot artifact files.
//
// It checks the naming conventions of each mode and the front matter
// VS Code reads from chat modes, instructions, prompts, and agents. Issues
// are collected into a [Result] instead of failing fast so a whole install
// root can be reported in one pass.
//
//	res := validator.Artifact(artifact.Prompts, "review.prompt.md", content)
//	if res.HasErrors() {
//		// the file will not load in Copilot
//	}
//
// [Tree] walks <root>/<mode>/ for every mode and merges the per-file results.
package validator
