package settings

import (
	"net/url"
	"strings"

	"github.com/ketaqwaan/ketaqwaan/backend/go-services/internal/content"
)

// Singleton config sections. Unlike versioned content these are mutated in
// place: one record per type, no history, no isActive flag. Each type has a
// Patch counterpart whose pointer fields whitelist exactly what a PUT may
// change; unknown client keys never reach the stored state.

type Navbar struct {
	NavbarJudul         string `bson:"NavbarJudul" json:"NavbarJudul"`
	NavbarSekolah       string `bson:"NavbarSekolah" json:"NavbarSekolah"`
	NavbarMenuMobile    string `bson:"NavbarMenuMobile" json:"NavbarMenuMobile"`
	NavbarHome          string `bson:"NavbarHome" json:"NavbarHome"`
	NavbarStruktur      string `bson:"NavbarStruktur" json:"NavbarStruktur"`
	NavbarProgramKerja  string `bson:"NavbarProgramKerja" json:"NavbarProgramKerja"`
	NavbarKegiatan      string `bson:"NavbarKegiatan" json:"NavbarKegiatan"`
	NavbarEkskul        string `bson:"NavbarEkskul" json:"NavbarEkskul"`
	NavbarInformasi     string `bson:"NavbarInformasi" json:"NavbarInformasi"`
	NavbarSaran         string `bson:"NavbarSaran" json:"NavbarSaran"`
	NavbarAdmin         string `bson:"NavbarAdmin" json:"NavbarAdmin"`
	NavbarInstagramLink string `bson:"NavbarInstagramLink" json:"NavbarInstagramLink"`
	NavbarTiktokLink    string `bson:"NavbarTiktokLink" json:"NavbarTiktokLink"`
	NavbarCopyRight     string `bson:"NavbarCopyRight" json:"NavbarCopyRight"`
}

type NavbarPatch struct {
	NavbarJudul         *string `json:"NavbarJudul"`
	NavbarSekolah       *string `json:"NavbarSekolah"`
	NavbarMenuMobile    *string `json:"NavbarMenuMobile"`
	NavbarHome          *string `json:"NavbarHome"`
	NavbarStruktur      *string `json:"NavbarStruktur"`
	NavbarProgramKerja  *string `json:"NavbarProgramKerja"`
	NavbarKegiatan      *string `json:"NavbarKegiatan"`
	NavbarEkskul        *string `json:"NavbarEkskul"`
	NavbarInformasi     *string `json:"NavbarInformasi"`
	NavbarSaran         *string `json:"NavbarSaran"`
	NavbarAdmin         *string `json:"NavbarAdmin"`
	NavbarInstagramLink *string `json:"NavbarInstagramLink"`
	NavbarTiktokLink    *string `json:"NavbarTiktokLink"`
	NavbarCopyRight     *string `json:"NavbarCopyRight"`
}

type Footer struct {
	FooterDeskripsi       string `bson:"FooterDeskripsi" json:"FooterDeskripsi"`
	FooterLinkInstagram   string `bson:"FooterLinkInstagram" json:"FooterLinkInstagram"`
	FooterLinkTiktok      string `bson:"FooterLinkTiktok" json:"FooterLinkTiktok"`
	FooterAlamatJalan     string `bson:"FooterAlamatJalan" json:"FooterAlamatJalan"`
	FooterAlamatKecamatan string `bson:"FooterAlamatKecamatan" json:"FooterAlamatKecamatan"`
	FooterAlamatKota      string `bson:"FooterAlamatKota" json:"FooterAlamatKota"`
	FooterAlamatProvinsi  string `bson:"FooterAlamatProvinsi" json:"FooterAlamatProvinsi"`
	FooterNarahubung      string `bson:"FooterNarahubung" json:"FooterNarahubung"`
}

type FooterPatch struct {
	FooterDeskripsi       *string `json:"FooterDeskripsi"`
	FooterLinkInstagram   *string `json:"FooterLinkInstagram"`
	FooterLinkTiktok      *string `json:"FooterLinkTiktok"`
	FooterAlamatJalan     *string `json:"FooterAlamatJalan"`
	FooterAlamatKecamatan *string `json:"FooterAlamatKecamatan"`
	FooterAlamatKota      *string `json:"FooterAlamatKota"`
	FooterAlamatProvinsi  *string `json:"FooterAlamatProvinsi"`
	FooterNarahubung      *string `json:"FooterNarahubung"`
}

type Informasi struct {
	InformasiJudul     string `bson:"InformasiJudul" json:"InformasiJudul"`
	InformasiDeskripsi string `bson:"InformasiDeskripsi" json:"InformasiDeskripsi"`
	InfomasiLink       string `bson:"InfomasiLink" json:"InfomasiLink"`
}

type InformasiPatch struct {
	InformasiJudul     *string `json:"InformasiJudul"`
	InformasiDeskripsi *string `json:"InformasiDeskripsi"`
	InfomasiLink       *string `json:"InfomasiLink"`
}

type Saran struct {
	SaranJudul        string `bson:"SaranJudul" json:"SaranJudul"`
	SaranDeskripsi    string `bson:"SaranDeskripsi" json:"SaranDeskripsi"`
	SaranSubDeskripsi string `bson:"SaranSubDeskripsi" json:"SaranSubDeskripsi"`
	SaranLink         string `bson:"SaranLink" json:"SaranLink"`
}

type SaranPatch struct {
	SaranJudul        *string `json:"SaranJudul"`
	SaranDeskripsi    *string `json:"SaranDeskripsi"`
	SaranSubDeskripsi *string `json:"SaranSubDeskripsi"`
	SaranLink         *string `json:"SaranLink"`
}

// DefaultNavbar and friends seed the store at first start; persisted state
// overlays these on Load.
func DefaultNavbar() Navbar {
	return Navbar{
		NavbarJudul:         "SIE 1 KETAQWAAN",
		NavbarSekolah:       "MAN 1 Jember",
		NavbarMenuMobile:    "Menu Navigasi",
		NavbarHome:          "Beranda",
		NavbarStruktur:      "Struktur Organisasi",
		NavbarProgramKerja:  "Program Kerja",
		NavbarKegiatan:      "PHBI",
		NavbarEkskul:        "Ekstrakurikuler",
		NavbarInformasi:     "Informasi",
		NavbarSaran:         "Kotak Saran",
		NavbarAdmin:         "ADMIN",
		NavbarInstagramLink: "https://www.instagram.com",
		NavbarTiktokLink:    "https://www.tiktok.com",
		NavbarCopyRight:     "© 2025 SIE 1 KETAQWAAN MAN 1 JEMBER",
	}
}

func DefaultFooter() Footer {
	return Footer{
		FooterDeskripsi:       "Sie 1 Ketaqwaan adalah organisasi yang berada di lingkungan MAN 1 JEMBER.",
		FooterLinkInstagram:   "/page-html/page-comingsoon.html",
		FooterLinkTiktok:      "/page-html/page-comingsoon.html",
		FooterAlamatJalan:     "Jl. Imam Bonjol No.50",
		FooterAlamatKecamatan: "Kaliwates Kidul, Kaliwates,",
		FooterAlamatKota:      "Kec. Kaliwates, Kabupaten Jember,",
		FooterAlamatProvinsi:  "Jawa Timur 68131.",
		FooterNarahubung:      "Jika ada eror hubungi Admin yaaa 🤩",
	}
}

func DefaultInformasi() Informasi {
	return Informasi{
		InformasiJudul:     "INFORMASI",
		InformasiDeskripsi: "Pengumuman tentang siapa saja yang lolos menjadi anggota sie 1 ketaqwaan MAN 1 Jember.",
		InfomasiLink:       "https://lookerstudio.google.com/reporting/dcf3ad5b-7817-4c57-b6ed-3bf6e96e6d96",
	}
}

func DefaultSaran() Saran {
	return Saran{
		SaranJudul:        "Kotak Saran",
		SaranDeskripsi:    "Berikan semua kritik, saran, dan apresiasi anda kepada kami😊",
		SaranSubDeskripsi: "Tenang semua masukan yang anda berikan akan bersifat anonim😶‍🌫️ jadi jangan ragu untuk bersuara yaaa🤩",
		SaranLink:         "https://kotaksaran-ketaqwaanman1jember.vercel.app/",
	}
}

func (p NavbarPatch) apply(n *Navbar) {
	setString(p.NavbarJudul, &n.NavbarJudul)
	setString(p.NavbarSekolah, &n.NavbarSekolah)
	setString(p.NavbarMenuMobile, &n.NavbarMenuMobile)
	setString(p.NavbarHome, &n.NavbarHome)
	setString(p.NavbarStruktur, &n.NavbarStruktur)
	setString(p.NavbarProgramKerja, &n.NavbarProgramKerja)
	setString(p.NavbarKegiatan, &n.NavbarKegiatan)
	setString(p.NavbarEkskul, &n.NavbarEkskul)
	setString(p.NavbarInformasi, &n.NavbarInformasi)
	setString(p.NavbarSaran, &n.NavbarSaran)
	setString(p.NavbarAdmin, &n.NavbarAdmin)
	setString(p.NavbarInstagramLink, &n.NavbarInstagramLink)
	setString(p.NavbarTiktokLink, &n.NavbarTiktokLink)
	setString(p.NavbarCopyRight, &n.NavbarCopyRight)
}

func (p FooterPatch) apply(f *Footer) {
	setString(p.FooterDeskripsi, &f.FooterDeskripsi)
	setString(p.FooterLinkInstagram, &f.FooterLinkInstagram)
	setString(p.FooterLinkTiktok, &f.FooterLinkTiktok)
	setString(p.FooterAlamatJalan, &f.FooterAlamatJalan)
	setString(p.FooterAlamatKecamatan, &f.FooterAlamatKecamatan)
	setString(p.FooterAlamatKota, &f.FooterAlamatKota)
	setString(p.FooterAlamatProvinsi, &f.FooterAlamatProvinsi)
	setString(p.FooterNarahubung, &f.FooterNarahubung)
}

func (p InformasiPatch) apply(i *Informasi) {
	setString(p.InformasiJudul, &i.InformasiJudul)
	setString(p.InformasiDeskripsi, &i.InformasiDeskripsi)
	setString(p.InfomasiLink, &i.InfomasiLink)
}

func (p SaranPatch) apply(s *Saran) {
	setString(p.SaranJudul, &s.SaranJudul)
	setString(p.SaranDeskripsi, &s.SaranDeskripsi)
	setString(p.SaranSubDeskripsi, &s.SaranSubDeskripsi)
	setString(p.SaranLink, &s.SaranLink)
}

func setString(src *string, dst *string) {
	if src != nil {
		*dst = *src
	}
}

// Validation on the merged state: required fields non-empty, link fields
// syntactically valid absolute URLs.

func (n Navbar) validate() []content.FieldError {
	var errs []content.FieldError
	errs = appendRequired(errs, "NavbarJudul", n.NavbarJudul)
	errs = appendRequired(errs, "NavbarSekolah", n.NavbarSekolah)
	return errs
}

func (f Footer) validate() []content.FieldError {
	var errs []content.FieldError
	errs = appendRequired(errs, "FooterDeskripsi", f.FooterDeskripsi)
	errs = appendRequired(errs, "FooterAlamatJalan", f.FooterAlamatJalan)
	return errs
}

func (i Informasi) validate() []content.FieldError {
	var errs []content.FieldError
	errs = appendRequired(errs, "InformasiJudul", i.InformasiJudul)
	errs = appendRequired(errs, "InformasiDeskripsi", i.InformasiDeskripsi)
	errs = appendURL(errs, "InfomasiLink", i.InfomasiLink)
	return errs
}

func (s Saran) validate() []content.FieldError {
	var errs []content.FieldError
	errs = appendRequired(errs, "SaranJudul", s.SaranJudul)
	errs = appendRequired(errs, "SaranDeskripsi", s.SaranDeskripsi)
	errs = appendRequired(errs, "SaranSubDeskripsi", s.SaranSubDeskripsi)
	errs = appendURL(errs, "SaranLink", s.SaranLink)
	return errs
}

func appendRequired(errs []content.FieldError, field, value string) []content.FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, content.FieldError{Field: field, Message: "Invalid value"})
	}
	return errs
}

func appendURL(errs []content.FieldError, field, value string) []content.FieldError {
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, content.FieldError{Field: field, Message: "Invalid value"})
	}
	return errs
}
