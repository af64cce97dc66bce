package discovery

import (
	"encoding/xml"
	"io"
	"os"
	"strings"
)

// ParseSitemap extracts the <loc> entries from a sitemap.xml file.
// It reads the XML as a token stream rather than unmarshaling into a
// urlset struct, so sitemap index files and mildly malformed sitemaps
// still yield their URLs. Entries are returned trimmed, in document
// order; callers treat them as a set.
//
// Design decision: encoding/xml's streaming Decoder is used directly
// because the sitemap format needs exactly one thing from the parser,
// the text of every <loc> element, and a schema-bound unmarshal would
// reject documents a crawler happily accepts.
func ParseSitemap(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is derived from the audited dist directory
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Read-only file

	decoder := xml.NewDecoder(f)

	var urls []string
	inLoc := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Return what was collected before the malformed region.
			return urls, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			inLoc = t.Name.Local == "loc"
		case xml.CharData:
			if inLoc {
				if text := strings.TrimSpace(string(t)); text != "" {
					urls = append(urls, text)
				}
				inLoc = false
			}
		case xml.EndElement:
			inLoc = false
		}
	}
	return urls, nil
}
