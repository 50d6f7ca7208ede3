package venues

// MergeFacebookEvents merges an incoming facebook event list into the stored
// one. Incoming order and values win; events are matched by facebookId, and
// an incoming event that carries no dates inherits the dates already stored
// for the same event. Unmatched incoming events pass through unchanged, and
// stored events missing from the incoming list are dropped.
func MergeFacebookEvents(existing, incoming []map[string]any) []map[string]any {
	byID := make(map[string]map[string]any, len(existing))
	for _, event := range existing {
		if id, ok := stringValue(event, "facebookId"); ok {
			byID[id] = event
		}
	}

	merged := make([]map[string]any, 0, len(incoming))
	for _, event := range incoming {
		out := deepCopyMap(event)
		if id, ok := stringValue(event, "facebookId"); ok {
			if prev, seen := byID[id]; seen {
				if _, hasDates := out["dates"]; !hasDates {
					if dates, ok := prev["dates"]; ok {
						out["dates"] = deepCopyValue(dates)
					}
				}
			}
		}
		merged = append(merged, out)
	}
	return merged
}
