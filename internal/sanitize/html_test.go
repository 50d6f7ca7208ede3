package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextRemovesAllHTML(t *testing.T) {
	require.Equal(t, "Club Paradiso", Text("<b>Club</b> Paradiso"))
	require.Equal(t, "plain", Text("plain"))
}

func TestHTMLKeepsSafeFormatting(t *testing.T) {
	require.Equal(t, "<p>Late night <b>techno</b></p>", HTML("<p>Late night <b>techno</b></p>"))
}

func TestHTMLStripsScripts(t *testing.T) {
	out := HTML(`<p onclick="steal()">hi</p><script>bad()</script>`)

	require.NotContains(t, out, "onclick")
	require.NotContains(t, out, "script")
	require.Contains(t, out, "hi")
}
