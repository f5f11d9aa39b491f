package gutendex

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// listingSchema describes the subset of the /books payload folio relies on.
// Unknown fields are allowed; the catalog owns its schema.
const listingSchema = `{
  "type": "object",
  "required": ["results"],
  "properties": {
    "count": {"type": "integer"},
    "next": {"type": ["string", "null"]},
    "previous": {"type": ["string", "null"]},
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "integer"},
          "title": {"type": ["string", "null"]},
          "authors": {
            "type": ["array", "null"],
            "items": {
              "type": "object",
              "properties": {"name": {"type": ["string", "null"]}}
            }
          },
          "languages": {"type": ["array", "null"], "items": {"type": "string"}},
          "formats": {"type": ["object", "null"], "additionalProperties": {"type": "string"}},
          "download_count": {"type": ["integer", "null"]}
        }
      }
    }
  }
}`

var compiledListingSchema = mustCompileSchema(listingSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("compile listing schema: %v", err))
	}
	return schema
}

// DecodeListing validates body against the listing schema and decodes it.
// Any failure wraps ErrMalformedResponse.
func DecodeListing(body []byte) (Listing, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return Listing{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}
	result, err := compiledListingSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return Listing{}, fmt.Errorf("%w: %s", ErrMalformedResponse, strings.Join(problems, "; "))
	}

	var listing Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return Listing{}, fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err)
	}
	if listing.Results == nil {
		listing.Results = []Book{}
	}
	for i := range listing.Results {
		listing.Results[i] = sanitizeBook(listing.Results[i])
	}
	return listing, nil
}
