package bulkload

import (
	"time"

	"eohealth-registry/internal/domain/children"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DemoChildren son los 10 registros de muestra del entorno demo. Entran
// por el mismo Register de dos fases que cualquier alta real.
func DemoChildren() []children.RegisterInput {
	return []children.RegisterInput{
		{FullName: "أحمد علي", NationalID: "T10000001", BirthDate: day(2024, 1, 10), Gender: string(children.GenderMale), MotherID: "M1001", FatherID: "F1001", Governorate: "Cairo"},
		{FullName: "مريم حسن", NationalID: "T10000002", BirthDate: day(2023, 5, 5), Gender: string(children.GenderFemale), MotherID: "M1002", FatherID: "F1002", Governorate: "Giza"},
		{FullName: "يوسف سعيد", NationalID: "T10000003", BirthDate: day(2022, 11, 20), Gender: string(children.GenderMale), MotherID: "M1003", FatherID: "F1003", Governorate: "Alexandria"},
		{FullName: "سارة محمد", NationalID: "T10000004", BirthDate: day(2021, 7, 15), Gender: string(children.GenderFemale), MotherID: "M1004", FatherID: "F1004", Governorate: "Cairo"},
		{FullName: "آدم خالد", NationalID: "T10000005", BirthDate: day(2020, 3, 2), Gender: string(children.GenderMale), MotherID: "M1005", FatherID: "F1005", Governorate: "Dakahliya"},
		{FullName: "لين محمود", NationalID: "T10000006", BirthDate: day(2019, 8, 12), Gender: string(children.GenderFemale), MotherID: "M1006", FatherID: "F1006", Governorate: "Aswan"},
		{FullName: "عمر نبيل", NationalID: "T10000007", BirthDate: day(2018, 12, 1), Gender: string(children.GenderMale), MotherID: "M1007", FatherID: "F1007", Governorate: "Luxor"},
		{FullName: "نور سامي", NationalID: "T10000008", BirthDate: day(2017, 2, 25), Gender: string(children.GenderFemale), MotherID: "M1008", FatherID: "F1008", Governorate: "Ismailia"},
		{FullName: "ريان مصطفى", NationalID: "T10000009", BirthDate: day(2016, 9, 9), Gender: string(children.GenderMale), MotherID: "M1009", FatherID: "F1009", Governorate: "Suez"},
		{FullName: "هنا نبيل", NationalID: "T10000010", BirthDate: day(2015, 6, 18), Gender: string(children.GenderFemale), MotherID: "M1010", FatherID: "F1010", Governorate: "Gharbia"},
	}
}
