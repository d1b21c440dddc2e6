package domain

import "testing"

func TestNewLandmarkSchema(t *testing.T) {
	tests := []struct {
		name    string
		names   []string
		wantErr bool
	}{
		{
			name:  "valid schema",
			names: []string{"nose", "left_ear", "right_ear", "tail_base"},
		},
		{
			name:    "empty schema",
			names:   nil,
			wantErr: true,
		},
		{
			name:    "empty name",
			names:   []string{"nose", ""},
			wantErr: true,
		},
		{
			name:    "duplicate name",
			names:   []string{"nose", "tail", "nose"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := NewLandmarkSchema(tt.names)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if schema.Len() != len(tt.names) {
				t.Errorf("Len() = %d, want %d", schema.Len(), len(tt.names))
			}
			for i, name := range tt.names {
				idx, ok := schema.Index(name)
				if !ok || idx != i {
					t.Errorf("Index(%q) = (%d, %v), want (%d, true)", name, idx, ok, i)
				}
			}
		})
	}
}

func TestLandmarkSchemaOrderPreserved(t *testing.T) {
	names := []string{"tail_base", "nose", "left_ear"}
	schema, err := NewLandmarkSchema(names)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := schema.Names()
	for i := range names {
		if got[i] != names[i] {
			t.Fatalf("Names() = %v, want %v", got, names)
		}
	}

	// The returned slice is a copy; mutating it must not affect the schema
	got[0] = "mutated"
	if schema.Names()[0] != "tail_base" {
		t.Error("schema was mutated through Names()")
	}
}
