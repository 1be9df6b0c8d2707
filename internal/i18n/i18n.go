// Package i18n is the bilingual (English/Urdu) text table. One process-wide
// current locale drives every screen; Urdu flips the document direction to
// right-to-left.
package i18n

import "sync/atomic"

const (
	English Locale = "en"
	Urdu    Locale = "ur"
)

type Locale string

var current atomic.Value // Locale

func init() {
	current.Store(English)
}

// Current returns the process-wide locale.
func Current() Locale {
	return current.Load().(Locale)
}

// Set switches the process-wide locale; unknown values are ignored.
func Set(l Locale) {
	if l == English || l == Urdu {
		current.Store(l)
	}
}

// Toggle flips between English and Urdu.
func Toggle() Locale {
	next := English
	if Current() == English {
		next = Urdu
	}
	current.Store(next)
	return next
}

// Dir returns the text direction for the current locale.
func Dir() string {
	if Current() == Urdu {
		return "rtl"
	}
	return "ltr"
}

// T looks up a key in the current locale, falling back to the key itself so
// a missing translation shows up on screen instead of hiding.
func T(key string) string {
	return Lookup(key, Current())
}

// Lookup resolves (key, locale) against the table.
func Lookup(key string, l Locale) string {
	entry, ok := translations[key]
	if !ok {
		return key
	}
	if l == Urdu {
		return entry.ur
	}
	return entry.en
}

type entry struct {
	en string
	ur string
}

var translations = map[string]entry{
	"appName":            {"Madrasa Finance Manager", "مدرسہ فنانس مینیجر"},
	"dashboard":          {"Dashboard", "ڈیش بورڈ"},
	"income":             {"Income", "آمدنی"},
	"expense":            {"Expenses", "اخراجات"},
	"reports":            {"Reports", "رپورٹس"},
	"donors":             {"Donors", "عطیہ دہندگان"},
	"sections":           {"Sections", "سیکشنز"},
	"settings":           {"Settings", "ترتیبات"},
	"totalIncome":        {"Total Income", "کل آمدنی"},
	"totalExpense":       {"Total Expenses", "کل اخراجات"},
	"balance":            {"Balance", "بیلنس"},
	"surplus":            {"Surplus", "بچت"},
	"deficit":            {"Deficit", "خسارہ"},
	"addIncome":          {"Add Income", "آمدنی شامل کریں"},
	"addExpense":         {"Add Expense", "اخراجات شامل کریں"},
	"viewReports":        {"View Reports", "رپورٹس دیکھیں"},
	"recentTransactions": {"Recent Transactions", "حالیہ لین دین"},
	"monthlyOverview":    {"Monthly Overview", "ماہانہ جائزہ"},
	"donationType":       {"Donation Type", "عطیہ کی قسم"},
	"zakat":              {"Zakat", "زکوٰۃ"},
	"sadaqah":            {"Sadaqah", "صدقہ"},
	"fitrana":            {"Fitrana", "فطرانہ"},
	"qurbani":            {"Qurbani Fund", "قربانی فنڈ"},
	"donation":           {"General Donation", "عام عطیہ"},
	"amount":             {"Amount", "رقم"},
	"date":               {"Date", "تاریخ"},
	"donorName":          {"Donor Name", "عطیہ دہندہ کا نام"},
	"description":        {"Description", "تفصیل"},
	"category":           {"Category", "زمرہ"},
	"paymentMethod":      {"Payment Method", "ادائیگی کا طریقہ"},
	"section":            {"Section", "سیکشن"},
	"allSections":        {"All Sections", "تمام سیکشنز"},
	"period":             {"Period", "مدت"},
	"thisMonth":          {"This Month", "اس مہینے"},
	"last3Months":        {"Last 3 Months", "پچھلے 3 مہینے"},
	"thisYear":           {"This Year", "اس سال"},
	"transactions":       {"transactions", "لین دین"},
	"carriedForward":     {"Carried Forward", "پچھلا میزان"},
	"runningTotal":       {"Running Total", "رواں میزان"},
	"unavailable":        {"Unavailable", "دستیاب نہیں"},
	"print":              {"Print", "پرنٹ کریں"},
	"exportCSV":          {"Export CSV", "CSV ڈاؤن لوڈ"},
	"submit":             {"Submit", "جمع کریں"},
	"cancel":             {"Cancel", "منسوخ کریں"},
	"page":               {"Page", "صفحہ"},
	"name":               {"Name", "نام"},
	"phone":              {"Phone", "فون"},
	"email":              {"Email", "ای میل"},
	"address":            {"Address", "پتہ"},
	"cnic":               {"CNIC", "شناختی کارڈ نمبر"},
	"regularDonor":       {"Regular Donor", "باقاعدہ عطیہ دہندہ"},
	"notes":              {"Notes", "نوٹس"},
	"addDonor":           {"Add Donor", "عطیہ دہندہ شامل کریں"},
	"search":             {"Search", "تلاش"},
	"language":           {"اردو", "English"},
	"cash":               {"Cash", "نقد"},
	"bank":               {"Bank Transfer", "بینک ٹرانسفر"},
	"online":             {"Online", "آن لائن"},
	"total":              {"Total", "میزان"},
	"noRecords":          {"No records yet", "ابھی کوئی اندراج نہیں"},
	"other":              {"Other", "دیگر"},
	"salaries":           {"Salaries", "تنخواہیں"},
	"food":               {"Food", "کھانا"},
	"utilities":          {"Utilities", "یوٹیلیٹیز"},
	"books":              {"Books", "کتابیں"},
	"furniture":          {"Furniture", "فرنیچر"},
	"stationery":         {"Stationery", "سٹیشنری"},
	"construction":       {"Construction", "تعمیرات"},
	"repairs":            {"Repairs", "مرمت"},
	"events":             {"Events", "تقریبات"},
}
