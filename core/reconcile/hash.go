package reconcile

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"enumeration-report/core/utils"
)

// Scene group field names in priority order. The first present field wins.
var (
	referenceSceneFields = []string{"master_scenes", "reference_scenes"}
	secondarySceneFields = []string{"slave_scenes", "secondary_scenes"}
)

// Hasher derives an IdentityKey from a record's scene groups.
// ok is false when the record cannot be keyed; such records must be kept out
// of identity joins.
type Hasher interface {
	Key(r Record) (key IdentityKey, ok bool)
}

// SceneGroups returns the reference and secondary scene ids of a record.
// ok is false when either group is absent.
func SceneGroups(r Record) (reference, secondary []string, ok bool) {
	reference, refOK := sceneGroup(r, referenceSceneFields)
	secondary, secOK := sceneGroup(r, secondarySceneFields)
	if !refOK || !secOK {
		return nil, nil, false
	}
	return reference, secondary, true
}

func sceneGroup(r Record, fields []string) ([]string, bool) {
	for _, field := range fields {
		v, ok := r.MetadataValue(field)
		if !ok || v == nil {
			continue
		}
		raw, ok := v.([]any)
		if !ok {
			continue
		}
		ids := make([]string, 0, len(raw))
		for _, entry := range raw {
			// Entries may be (id, extra) pairs; only the id takes part in the key.
			if pair, ok := entry.([]any); ok {
				if len(pair) == 0 {
					continue
				}
				entry = pair[0]
			}
			ids = append(ids, utils.ToString(entry))
		}
		return ids, true
	}
	return nil, false
}

func joinSorted(ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}

// DigestHasher produces the enumerator's key: the MD5 of the JSON array
// ["<sorted reference ids>", "<sorted secondary ids>"].
// A precomputed metadata.full_id_hash is trusted as-is.
type DigestHasher struct{}

// Key implements Hasher.
func (DigestHasher) Key(r Record) (IdentityKey, bool) {
	if v, ok := r.MetadataValue("full_id_hash"); ok && !utils.IsEmpty(v) {
		return IdentityKey(utils.ToString(v)), true
	}
	reference, secondary, ok := SceneGroups(r)
	if !ok {
		return "", false
	}
	sum := md5.Sum(enumeratorJSON(joinSorted(reference), joinSorted(secondary)))
	return IdentityKey(hex.EncodeToString(sum[:])), true
}

// enumeratorJSON renders a two-element string array with ", " between the items,
// which is the byte layout the upstream enumerator hashes.
func enumeratorJSON(a, b string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	buf.Write(quoteJSON(a))
	buf.WriteString(", ")
	buf.Write(quoteJSON(b))
	buf.WriteByte(']')
	return buf.Bytes()
}

// quoteJSON quotes s with ASCII-only output: non-ASCII runes become \uXXXX
// escapes, astral runes a surrogate pair.
func quoteJSON(s string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x7f:
				buf.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&buf, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(&buf, `\u%04x`, r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes()
}

// PairHasher keys a record as md5(reference)_md5(secondary).
// When Conversion is set, every raw id is mapped through it first (acquisition
// ids to scene ids); ids without a mapping become Missing so the key reflects
// the gap instead of hiding it.
type PairHasher struct {
	Conversion map[string]string
}

// Key implements Hasher.
func (h PairHasher) Key(r Record) (IdentityKey, bool) {
	reference, secondary, ok := SceneGroups(r)
	if !ok {
		return "", false
	}
	ref := md5.Sum([]byte(joinSorted(h.convert(reference))))
	sec := md5.Sum([]byte(joinSorted(h.convert(secondary))))
	return IdentityKey(hex.EncodeToString(ref[:]) + "_" + hex.EncodeToString(sec[:])), true
}

func (h PairHasher) convert(ids []string) []string {
	if h.Conversion == nil {
		return ids
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		if mapped, ok := h.Conversion[id]; ok && mapped != "" {
			out[i] = mapped
		} else {
			out[i] = Missing
		}
	}
	return out
}

// KeyString renders a key lookup for reports.
func KeyString(key IdentityKey, ok bool) string {
	if !ok {
		return Unhashable
	}
	return string(key)
}
