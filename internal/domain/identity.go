package domain

import "sort"

// IdentityEntry links one local image to its remote upload.
type IdentityEntry struct {
	VideoGroup string
	FileName   string
	UploadID   int
	RemoteFile string
}

type localKey struct {
	videoGroup string
	fileName   string
}

// IdentityMap is the durable join table between local image identity and
// remote upload identity. (videoGroup, fileName) and uploadID are each
// unique within the map; both directions resolve in O(1).
type IdentityMap struct {
	byLocal  map[localKey]IdentityEntry
	byUpload map[int]IdentityEntry
}

// NewIdentityMap returns an empty identity map
func NewIdentityMap() *IdentityMap {
	return &IdentityMap{
		byLocal:  make(map[localKey]IdentityEntry),
		byUpload: make(map[int]IdentityEntry),
	}
}

// Add inserts a new entry. An entry whose local key or upload id already
// exists is rejected with ErrDuplicateIdentity and the map is left
// unchanged: an image that already has a remote identity must never be
// silently re-mapped.
func (m *IdentityMap) Add(entry IdentityEntry) error {
	key := localKey{entry.VideoGroup, entry.FileName}
	if _, ok := m.byLocal[key]; ok {
		return &IdentityError{
			VideoGroup: entry.VideoGroup,
			FileName:   entry.FileName,
			UploadID:   entry.UploadID,
			Reason:     "image already mapped to a remote upload",
		}
	}
	if prev, ok := m.byUpload[entry.UploadID]; ok {
		return &IdentityError{
			VideoGroup: entry.VideoGroup,
			FileName:   entry.FileName,
			UploadID:   entry.UploadID,
			Reason:     "upload id already mapped to " + prev.VideoGroup + "/" + prev.FileName,
		}
	}
	m.byLocal[key] = entry
	m.byUpload[entry.UploadID] = entry
	return nil
}

// Merge adds every entry, collecting a per-entry error for each rejected
// duplicate and continuing with the rest. It returns the number of entries
// actually added.
func (m *IdentityMap) Merge(entries []IdentityEntry) (added int, errs []error) {
	for _, entry := range entries {
		if err := m.Add(entry); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errs
}

// LookupLocal resolves a (videoGroup, fileName) key to its entry
func (m *IdentityMap) LookupLocal(videoGroup, fileName string) (IdentityEntry, bool) {
	entry, ok := m.byLocal[localKey{videoGroup, fileName}]
	return entry, ok
}

// LookupUpload resolves a remote upload id to its entry
func (m *IdentityMap) LookupUpload(uploadID int) (IdentityEntry, bool) {
	entry, ok := m.byUpload[uploadID]
	return entry, ok
}

// Len returns the number of entries in the map
func (m *IdentityMap) Len() int {
	return len(m.byLocal)
}

// Entries returns all entries sorted by video group then file name,
// so persisted output is stable across runs.
func (m *IdentityMap) Entries() []IdentityEntry {
	out := make([]IdentityEntry, 0, len(m.byLocal))
	for _, entry := range m.byLocal {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VideoGroup != out[j].VideoGroup {
			return out[i].VideoGroup < out[j].VideoGroup
		}
		return out[i].FileName < out[j].FileName
	})
	return out
}
