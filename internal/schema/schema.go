// Package schema declares the closed set of legal configuration documents.
//
// The schema is plain data: a JSON Schema document assembled from Go maps
// and compiled once. Every object is closed, so an unknown key anywhere in
// the document is a violation rather than a warning.
package schema

import (
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Allowed values for enumerated fields.
var (
	AuthTypes       = []string{"basic", "digest", "form"}
	SortKeys        = []string{"number", "updated", "last-seen", "project"}
	SizeColumnTypes = []string{"graph", "split-graph", "number", "disabled"}
)

// ThresholdCount is the number of entries a size-column threshold table holds.
const ThresholdCount = 8

const schemaURL = "gertty.schema.json"

type object = map[string]any

func str() object      { return object{"type": "string"} }
func nonEmpty() object { return object{"type": "string", "minLength": 1} }
func boolean() object  { return object{"type": "boolean"} }
func integer() object  { return object{"type": "integer"} }

func listOf(item any) object {
	return object{"type": "array", "items": item}
}

func enum(values []string) object {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return object{"enum": out}
}

// closed builds an object schema that rejects undeclared keys.
func closed(props object, required ...string) object {
	o := object{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		o["required"] = required
	}
	return o
}

// named builds an object schema with a required "name" and arbitrary
// other keys whose values match value.
func named(value object) object {
	return object{
		"type":                 "object",
		"properties":           object{"name": str()},
		"required":             []string{"name"},
		"additionalProperties": value,
	}
}

func sortBy() object {
	return object{"anyOf": []any{enum(SortKeys), listOf(enum(SortKeys))}}
}

func server() object {
	return closed(object{
		"name":        nonEmpty(),
		"url":         nonEmpty(),
		"username":    nonEmpty(),
		"password":    str(),
		"verify-ssl":  boolean(),
		"ssl-ca-path": str(),
		"dburi":       str(),
		"git-root":    nonEmpty(),
		"git-url":     str(),
		"log-file":    str(),
		"lock-file":   str(),
		"socket":      str(),
		"auth-type":   enum(AuthTypes),
	}, "name", "url", "username", "git-root")
}

func replacement() object {
	text := closed(object{
		"text": object{"oneOf": []any{
			str(),
			closed(object{"color": str(), "text": str()}, "text"),
		}},
	}, "text")
	link := closed(object{
		"link": closed(object{"url": str(), "text": str()}, "url", "text"),
	}, "link")
	search := closed(object{
		"search": closed(object{"query": str(), "text": str()}, "query", "text"),
	}, "search")
	return object{"oneOf": []any{text, link, search}}
}

func keyBinding() object {
	return object{"oneOf": []any{
		str(),
		listOf(object{"oneOf": []any{str(), listOf(str())}}),
	}}
}

// Document returns the schema as a JSON Schema document.
func Document() map[string]any {
	sizeTypes := make([]any, 0, len(SizeColumnTypes)+1)
	for _, t := range SizeColumnTypes {
		sizeTypes = append(sizeTypes, t)
	}
	sizeTypes = append(sizeTypes, nil)

	thresholds := listOf(integer())
	thresholds["minItems"] = ThresholdCount
	thresholds["maxItems"] = ThresholdCount

	servers := listOf(server())
	servers["minItems"] = 1

	doc := closed(object{
		"servers":  servers,
		"palettes": listOf(named(listOf(str()))),
		"palette":  str(),
		"keymaps":  listOf(named(keyBinding())),
		"keymap":   str(),
		"commentlinks": listOf(closed(object{
			"match":        str(),
			"replacements": listOf(replacement()),
			"test-result":  str(),
		}, "match", "replacements")),
		"dashboards": listOf(closed(object{
			"name":    str(),
			"query":   str(),
			"sort-by": sortBy(),
			"reverse": boolean(),
			"key":     str(),
		}, "name", "query", "key")),
		"reviewkeys": listOf(closed(object{
			"approvals": listOf(closed(object{
				"category": str(),
				"value":    integer(),
			}, "category", "value")),
			"message": str(),
			"submit":  boolean(),
			"key":     str(),
		}, "approvals", "key")),
		"change-list-query": str(),
		"diff-view":         str(),
		"hide-comments": listOf(closed(object{
			"author": str(),
		}, "author")),
		"thread-changes":         boolean(),
		"display-times-in-utc":   boolean(),
		"handle-mouse":           boolean(),
		"breadcrumbs":            boolean(),
		"close-change-on-review": boolean(),
		"change-list-options": closed(object{
			"sort-by": sortBy(),
			"reverse": boolean(),
		}),
		"expire-age": str(),
		"size-column": closed(object{
			"type":       object{"enum": sizeTypes},
			"thresholds": thresholds,
		}, "type"),
	}, "servers")
	doc["$schema"] = "https://json-schema.org/draft/2020-12/schema"
	doc["title"] = "gertty configuration"
	return doc
}

// JSON returns the schema document encoded as indented JSON.
func JSON() ([]byte, error) {
	return json.MarshalIndent(Document(), "", "  ")
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	data, err := json.Marshal(Document())
	if err != nil {
		return nil, err
	}
	return jsonschema.CompileString(schemaURL, string(data))
})
