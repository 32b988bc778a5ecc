package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate_RequiredStrings(t *testing.T) {
	verr := HeroSection.Validate(Document{
		"HeroWelcomeText":   "Welcome",
		"HeroPrimaryText":   "   ", // whitespace only
		"HeroSecondaryText": 42,    // wrong type
		// HeroDescription missing
	})
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 3)

	got := map[string]bool{}
	for _, f := range verr.Fields {
		got[f.Field] = true
		require.Equal(t, "Invalid value", f.Message)
	}
	require.True(t, got["HeroPrimaryText"])
	require.True(t, got["HeroSecondaryText"])
	require.True(t, got["HeroDescription"])
}

func TestValidate_RequiredArrays(t *testing.T) {
	verr := StructureSection.Validate(Document{
		"Judul":             "Struktur",
		"JudulDeskripsi":    "Desc",
		"TahunKepengurusan": "2025",
		"members":           "not-an-array",
	})
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 1)
	require.Equal(t, "members", verr.Fields[0].Field)
	require.Equal(t, "Members must be an array", verr.Fields[0].Message)

	// []interface{} (decoded JSON) and typed slices both pass
	require.Nil(t, StructureSection.Validate(Document{
		"Judul":             "Struktur",
		"JudulDeskripsi":    "Desc",
		"TahunKepengurusan": "2025",
		"members":           []interface{}{"a", "b"},
	}))
	require.Nil(t, StructureSection.Validate(Document{
		"Judul":             "Struktur",
		"JudulDeskripsi":    "Desc",
		"TahunKepengurusan": "2025",
		"members":           []string{"a"},
	}))
}

func TestValidate_AllTypesAcceptMinimalBodies(t *testing.T) {
	cases := map[string]struct {
		typ Type
		doc Document
	}{
		"hero": {HeroSection, Document{
			"HeroWelcomeText": "a", "HeroPrimaryText": "b", "HeroSecondaryText": "c", "HeroDescription": "d",
		}},
		"program-kerja": {ProgramKerja, Document{
			"ProgramKerjaJudul": "a", "ProgramKerjaDeskripsi": "b", "programs": []interface{}{},
		}},
		"kegiatan": {Kegiatan, Document{
			"KegiatanJudul": "a", "KegiatanDeskripsi": "b", "KegiatanSlide": []interface{}{},
		}},
		"ekskul": {Ekskul, Document{
			"EkskulJudul": "a", "EkskulDeskripsi": "b", "EkskulSlide": []interface{}{},
		}},
	}
	for name, tc := range cases {
		require.Nil(t, tc.typ.Validate(tc.doc), "type %s", name)
	}
}
