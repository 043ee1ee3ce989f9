package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// AllCandidatesToken, when present in a candidate list, lifts the
// whitelist restriction and lets the detector consider every language
// whatlanggo knows.
const AllCandidatesToken = "+all"

// ShortTextTokenThreshold is the minimum whitespace-separated token count
// GetLang requires before attempting detection. Shorter texts are too
// noisy to classify reliably and GetLang returns "" for them without
// calling into the detector at all.
const ShortTextTokenThreshold = 3

// isoToLang maps the ISO 639-1 codes tpnote configures as candidates to
// whatlanggo's own Lang constants. Codes absent here (because whatlanggo
// has no ISO 639-1 equivalent, or tpnote has never needed it) are simply
// dropped from the whitelist rather than rejected.
var isoToLang = map[string]whatlanggo.Lang{
	"eo": whatlanggo.Epo,
	"en": whatlanggo.Eng,
	"ru": whatlanggo.Rus,
	"zh": whatlanggo.Cmn,
	"es": whatlanggo.Spa,
	"pt": whatlanggo.Por,
	"it": whatlanggo.Ita,
	"bn": whatlanggo.Ben,
	"fr": whatlanggo.Fra,
	"de": whatlanggo.Deu,
	"uk": whatlanggo.Ukr,
	"ka": whatlanggo.Kat,
	"ar": whatlanggo.Ara,
	"hi": whatlanggo.Hin,
	"ja": whatlanggo.Jpn,
	"he": whatlanggo.Heb,
	"yi": whatlanggo.Yid,
	"pl": whatlanggo.Pol,
	"am": whatlanggo.Amh,
	"jv": whatlanggo.Jav,
	"ko": whatlanggo.Kor,
	"nb": whatlanggo.Nob,
	"da": whatlanggo.Dan,
	"sv": whatlanggo.Swe,
	"fi": whatlanggo.Fin,
	"tr": whatlanggo.Tur,
	"nl": whatlanggo.Nld,
	"hu": whatlanggo.Hun,
	"cs": whatlanggo.Ces,
	"el": whatlanggo.Ell,
	"bg": whatlanggo.Bul,
	"be": whatlanggo.Bel,
	"mr": whatlanggo.Mar,
	"kn": whatlanggo.Kan,
	"ro": whatlanggo.Ron,
	"sl": whatlanggo.Slv,
	"hr": whatlanggo.Hrv,
	"sr": whatlanggo.Srp,
	"mk": whatlanggo.Mkd,
	"lt": whatlanggo.Lit,
	"lv": whatlanggo.Lav,
	"et": whatlanggo.Est,
	"ta": whatlanggo.Tam,
	"vi": whatlanggo.Vie,
	"ur": whatlanggo.Urd,
	"th": whatlanggo.Tha,
	"gu": whatlanggo.Guj,
	"uz": whatlanggo.Uzb,
	"pa": whatlanggo.Pan,
	"az": whatlanggo.Aze,
	"id": whatlanggo.Ind,
	"te": whatlanggo.Tel,
	"fa": whatlanggo.Pes,
	"ml": whatlanggo.Mal,
	"or": whatlanggo.Ori,
	"my": whatlanggo.Mya,
	"ne": whatlanggo.Nep,
	"si": whatlanggo.Sin,
	"km": whatlanggo.Khm,
	"tk": whatlanggo.Tuk,
	"ak": whatlanggo.Aka,
	"zu": whatlanggo.Zul,
	"sn": whatlanggo.Sna,
	"af": whatlanggo.Afr,
	"la": whatlanggo.Lat,
	"sk": whatlanggo.Slk,
	"ca": whatlanggo.Cat,
	"tl": whatlanggo.Tgl,
	"hy": whatlanggo.Hye,
}

// GetLang returns the ISO 639-1 code of text's detected language, or ""
// if detection is skipped (text shorter than [ShortTextTokenThreshold]
// tokens) or inconclusive.
//
// candidates restricts detection to the listed ISO 639-1 codes, keeping
// detection cost proportional to len(candidates) rather than whatlanggo's
// full language set. Candidates not recognized by [isoToLang] are
// dropped silently. If candidates contains [AllCandidatesToken], the
// whitelist restriction is lifted entirely.
func GetLang(text string, candidates []string) string {
	if len(strings.Fields(text)) < ShortTextTokenThreshold {
		return ""
	}

	opts := whatlanggo.Options{}

	if !containsAll(candidates) {
		whitelist := make(map[whatlanggo.Lang]bool, len(candidates))
		for _, c := range candidates {
			if lang, ok := isoToLang[c]; ok {
				whitelist[lang] = true
			}
		}
		opts.Whitelist = whitelist
	}

	info := whatlanggo.DetectWithOptions(text, opts)
	if !info.IsReliable() {
		return ""
	}

	return info.Lang.Iso6391()
}

func containsAll(candidates []string) bool {
	for _, c := range candidates {
		if c == AllCandidatesToken {
			return true
		}
	}

	return false
}

// MapLang resolves code through alist to an IETF BCP-47 tag. A code
// absent from alist passes through unchanged. An empty code is replaced
// by def.
func MapLang(code string, alist map[string]string, def string) string {
	if code == "" {
		return def
	}

	if mapped, ok := alist[code]; ok {
		return mapped
	}

	return code
}
