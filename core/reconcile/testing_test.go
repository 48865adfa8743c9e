package reconcile

// product builds a record with the given scene groups and extra metadata.
func product(id string, reference, secondary []any, metadata map[string]any) Record {
	met := map[string]any{}
	if reference != nil {
		met["reference_scenes"] = reference
	}
	if secondary != nil {
		met["secondary_scenes"] = secondary
	}
	for k, v := range metadata {
		met[k] = v
	}
	return Record{ID: id, Source: map[string]any{"id": id, "metadata": met}}
}

// dated builds a record whose date pair comes from metadata.
func dated(id, secondaryDate, referenceDate string) Record {
	return product(id, []any{id + "-ref"}, []any{id + "-sec"}, map[string]any{
		"secondary_date": secondaryDate,
		"reference_date": referenceDate,
	})
}

func scenes(ids ...string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
