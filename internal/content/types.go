package content

// Document is a schemaless content snapshot. Beyond the required fields
// checked at the boundary, the body is persisted and served unmodified.
type Document map[string]interface{}

// Reserved document fields owned by the store. Client-supplied values for
// these keys are stripped before any write.
const (
	FieldID        = "_id"
	FieldIsActive  = "isActive"
	FieldUpdatedBy = "updatedBy"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Type declares a versioned content type: its route name, response envelope
// key, Mongo collection and the required fields checked on every write.
type Type struct {
	// Name is the route segment under /api and the metrics label.
	Name string
	// Label prefixes user-facing messages ("Hero section created successfully").
	Label string
	// JSONKey is the envelope key in responses ({"heroSection": {...}}).
	JSONKey string
	// Collection is the Mongo collection holding all versions of the type.
	Collection string
	// Required lists fields that must be non-empty trimmed strings.
	Required []string
	// RequiredArrays lists fields that must be arrays.
	RequiredArrays []string
}

var (
	HeroSection = Type{
		Name:       "hero",
		Label:      "Hero section",
		JSONKey:    "heroSection",
		Collection: "herosections",
		Required:   []string{"HeroWelcomeText", "HeroPrimaryText", "HeroSecondaryText", "HeroDescription"},
	}

	StructureSection = Type{
		Name:           "struktur",
		Label:          "Structure section",
		JSONKey:        "struktur",
		Collection:     "structuresections",
		Required:       []string{"Judul", "JudulDeskripsi", "TahunKepengurusan"},
		RequiredArrays: []string{"members"},
	}

	ProgramKerja = Type{
		Name:           "program-kerja",
		Label:          "Program kerja",
		JSONKey:        "programKerja",
		Collection:     "programkerjas",
		Required:       []string{"ProgramKerjaJudul", "ProgramKerjaDeskripsi"},
		RequiredArrays: []string{"programs"},
	}

	Kegiatan = Type{
		Name:           "kegiatan",
		Label:          "Kegiatan",
		JSONKey:        "kegiatan",
		Collection:     "kegiatans",
		Required:       []string{"KegiatanJudul", "KegiatanDeskripsi"},
		RequiredArrays: []string{"KegiatanSlide"},
	}

	Ekskul = Type{
		Name:           "ekskul",
		Label:          "Ekskul",
		JSONKey:        "ekskul",
		Collection:     "ekskuls",
		Required:       []string{"EkskulJudul", "EkskulDeskripsi"},
		RequiredArrays: []string{"EkskulSlide"},
	}
)

// Types returns every registered versioned content type.
func Types() []Type {
	return []Type{HeroSection, StructureSection, ProgramKerja, Kegiatan, Ekskul}
}
