// Package sanitize strips unsafe HTML from client-submitted venue fields.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy removes all HTML tags and attributes. Used for fields that
	// must be plain text: venue names, categories, social handles.
	strictPolicy = bluemonday.StrictPolicy()

	// ugcPolicy allows safe user-generated formatting (<p>, <b>, <i>, <em>,
	// <strong>, <a>, lists, <br>) and is used for venue descriptions.
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML, returning plain text.
func Text(input string) string {
	return strictPolicy.Sanitize(input)
}

// HTML sanitizes formatted content, removing scripts, iframes, event
// handlers, and style attributes while keeping basic formatting.
func HTML(input string) string {
	return ugcPolicy.Sanitize(input)
}
