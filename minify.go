package stbjson

// Minify strips insignificant whitespace and, following the source
// library's stb_json_minify (a lenient extension beyond RFC 8259),
// "//" line comments and "/* */" block comments from json, provided
// they occur outside string literals. It does not otherwise validate
// json's syntax; feed the result to Parse to check well-formedness.
func Minify(json []byte) []byte {
	out := make([]byte, 0, len(json))
	i := 0
	for i < len(json) {
		switch {
		case json[i] == ' ' || json[i] == '\t' || json[i] == '\n' || json[i] == '\r':
			i++
		case json[i] == '/' && i+1 < len(json) && json[i+1] == '/':
			i += 2
			for i < len(json) && json[i] != '\n' {
				i++
			}
		case json[i] == '/' && i+1 < len(json) && json[i+1] == '*':
			i += 2
			for i+1 < len(json) && !(json[i] == '*' && json[i+1] == '/') {
				i++
			}
			i += 2
			if i > len(json) {
				i = len(json)
			}
		case json[i] == '"':
			start := i
			i++
			for i < len(json) {
				if json[i] == '\\' && i+1 < len(json) {
					i += 2
					continue
				}
				if json[i] == '"' {
					i++
					break
				}
				i++
			}
			out = append(out, json[start:i]...)
		default:
			out = append(out, json[i])
			i++
		}
	}
	return out
}
