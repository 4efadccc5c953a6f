// Package frontmatter splits YAML front matter from the Markdown body of
// Copilot artifact files.
//
// Front matter is delimited by lines containing only "---" at the start of
// the file and after the header. Both LF and CRLF line endings are handled.
//
// # Basic Usage
//
//	var m frontmatter.Matter
//	body, err := frontmatter.Parse(bytes.NewReader(content), &m)
//	if err != nil {
//		return err
//	}
//	fmt.Println(m.Description, m.ApplyTo)
//
// Files without front matter are accepted by [Parse] and returned whole as
// the body; [MustParse] reports [ErrNoFrontmatter] instead.
package frontmatter
