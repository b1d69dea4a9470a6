package i18n

import "strings"

// Lang es el idioma de la respuesta. El original guardaba esto en estado
// de sesión global; acá viaja por request (ver middleware.LangContext).
type Lang string

const (
	LangArabic  Lang = "ar"
	LangEnglish Lang = "en"
)

func ParseLang(s string) Lang {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en":
		return LangEnglish
	default:
		return LangArabic
	}
}

var table = map[string]map[Lang]string{
	"registered": {
		LangEnglish: "Registered successfully",
		LangArabic:  "تم التسجيل",
	},
	"child_not_found": {
		LangEnglish: "Child not found",
		LangArabic:  "الطفل غير موجود",
	},
	"name_and_national_id_required": {
		LangEnglish: "Full name and National ID are required",
		LangArabic:  "الاسم والرقم مطلوبان",
	},
	"medical_record_saved": {
		LangEnglish: "Medical record added",
		LangArabic:  "تم إضافة السجل الطبي",
	},
	"storage_unavailable": {
		LangEnglish: "Storage temporarily unavailable, please retry",
		LangArabic:  "التخزين غير متاح مؤقتاً، حاول مرة أخرى",
	},
	"db_cleared": {
		LangEnglish: "Demo DB cleared",
		LangArabic:  "تم مسح قاعدة البيانات التجريبية",
	},
	"imported": {
		LangEnglish: "Imported records",
		LangArabic:  "تم استيراد سجلات",
	},
}

// T devuelve el string para (key, lang); si falta la traducción cae a
// inglés, y si falta la key devuelve la key (igual que el prototipo).
func T(lang Lang, key string) string {
	m, ok := table[key]
	if !ok {
		return key
	}
	if s, ok := m[lang]; ok {
		return s
	}
	return m[LangEnglish]
}
