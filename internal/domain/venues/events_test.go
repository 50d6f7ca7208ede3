package venues

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeFacebookEventsInheritsDates(t *testing.T) {
	existing := []map[string]any{
		{"facebookId": "fb-1", "name": "Old name", "dates": []any{"2026-09-01"}},
	}
	incoming := []map[string]any{
		{"facebookId": "fb-1", "name": "New name"},
	}

	merged := MergeFacebookEvents(existing, incoming)

	require.Len(t, merged, 1)
	require.Equal(t, "New name", merged[0]["name"])
	require.Equal(t, []any{"2026-09-01"}, merged[0]["dates"])
}

func TestMergeFacebookEventsIncomingDatesWin(t *testing.T) {
	existing := []map[string]any{
		{"facebookId": "fb-1", "dates": []any{"2026-09-01"}},
	}
	incoming := []map[string]any{
		{"facebookId": "fb-1", "dates": []any{"2026-09-02", "2026-09-03"}},
	}

	merged := MergeFacebookEvents(existing, incoming)

	require.Equal(t, []any{"2026-09-02", "2026-09-03"}, merged[0]["dates"])
}

func TestMergeFacebookEventsUnmatchedPassThrough(t *testing.T) {
	existing := []map[string]any{
		{"facebookId": "fb-1", "dates": []any{"2026-09-01"}},
	}
	incoming := []map[string]any{
		{"facebookId": "fb-2", "name": "Brand new"},
	}

	merged := MergeFacebookEvents(existing, incoming)

	require.Len(t, merged, 1)
	require.Equal(t, "fb-2", merged[0]["facebookId"])
	require.NotContains(t, merged[0], "dates")
}

func TestMergeFacebookEventsDropsMissingStored(t *testing.T) {
	existing := []map[string]any{
		{"facebookId": "fb-1"},
		{"facebookId": "fb-2"},
	}
	incoming := []map[string]any{
		{"facebookId": "fb-2"},
	}

	merged := MergeFacebookEvents(existing, incoming)

	require.Len(t, merged, 1)
	require.Equal(t, "fb-2", merged[0]["facebookId"])
}

func TestMergeFacebookEventsEmptyIncoming(t *testing.T) {
	existing := []map[string]any{{"facebookId": "fb-1"}}

	merged := MergeFacebookEvents(existing, nil)

	require.Empty(t, merged)
}

func TestMergeFacebookEventsDoesNotAliasInput(t *testing.T) {
	incoming := []map[string]any{
		{"facebookId": "fb-1", "dates": []any{"2026-09-01"}},
	}

	merged := MergeFacebookEvents(nil, incoming)
	merged[0]["dates"].([]any)[0] = "changed"

	require.Equal(t, "2026-09-01", incoming[0]["dates"].([]any)[0])
}
