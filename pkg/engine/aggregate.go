package engine

// failure assembles the externally visible Result from the nested error
// tree: every entry's message runs through the translator, the flattened
// path map is built by a depth-first walk, and the formatter produces the
// payload. When the payload is a map the flattened form is injected under
// "fields".
func (e *Engine) failure(tree map[string]any) *Result {
	translated := e.translateTree(tree)
	fields := make(map[string][]string)
	flattenTree("", translated, fields)

	payload := e.formatter(translated)
	if m, ok := payload.(map[string]any); ok {
		m["fields"] = fields
	}

	return &Result{
		Errors:  translated,
		Fields:  fields,
		Payload: payload,
	}
}

// translateTree rebuilds the tree with each entry's message passed through
// the translator. Entries are immutable, so translated entries are copies.
func (e *Engine) translateTree(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for key, node := range tree {
		switch n := node.(type) {
		case Errors:
			translated := make(Errors, len(n))
			for i, entry := range n {
				msg := e.translator.Translate(entry.Code, entry.Message, entry.Meta)
				if msg == entry.Message {
					translated[i] = entry
					continue
				}
				translated[i] = NewError(entry.Code, msg, entry.Meta)
			}
			out[key] = translated
		case map[string]any:
			out[key] = e.translateTree(n)
		default:
			out[key] = node
		}
	}
	return out
}

// flattenTree walks the nested tree depth-first, joining keys with dots,
// and records the messages at each failing leaf.
func flattenTree(prefix string, tree map[string]any, out map[string][]string) {
	for key, node := range tree {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch n := node.(type) {
		case Errors:
			out[path] = n.Messages()
		case map[string]any:
			flattenTree(path, n, out)
		}
	}
}
