// Package geo holds the static location catalog, the sunrise-band
// heuristic, and ISO country-code canonicalization.
package geo

import "math/rand"

// Location is one resolved travel destination. It is a value object with no
// lifecycle of its own; it exists only within one travel trigger.
type Location struct {
	Country           string
	CountryLocalized  string
	City              string
	Landmark          string
	LandmarkLocalized string
	Timezone          string
	PhotoURL          string
}

// Catalog is the fixed fallback set of real-world destinations. Picks are
// uniform with no repetition avoidance.
var Catalog = []Location{
	{"Japan", "日本", "Kyoto", "Fushimi Inari Taisha", "伏見稲荷大社", "Asia/Tokyo",
		"https://images.unsplash.com/photo-1478436127897-769e1b3f0f36"},
	{"Japan", "日本", "Tokyo", "Shibuya Crossing", "渋谷スクランブル交差点", "Asia/Tokyo",
		"https://images.unsplash.com/photo-1542051841857-5f90071e7989"},
	{"China", "中国", "Beijing", "The Great Wall at Mutianyu", "慕田峪长城", "Asia/Shanghai",
		"https://images.unsplash.com/photo-1508804185872-d7badad00f7d"},
	{"China", "中国", "Zhangjiajie", "Tianmen Mountain", "天门山", "Asia/Shanghai",
		"https://images.unsplash.com/photo-1513977055326-8ae6272d90a7"},
	{"Italy", "Italia", "Rome", "The Colosseum", "Colosseo", "Europe/Rome",
		"https://images.unsplash.com/photo-1552832230-c0197dd311b5"},
	{"Italy", "Italia", "Venice", "Grand Canal", "Canal Grande", "Europe/Rome",
		"https://images.unsplash.com/photo-1514890547357-a9ee288728e0"},
	{"France", "France", "Paris", "Eiffel Tower", "Tour Eiffel", "Europe/Paris",
		"https://images.unsplash.com/photo-1511739001486-6bfe10ce785f"},
	{"United Kingdom", "United Kingdom", "London", "Tower Bridge", "Tower Bridge", "Europe/London",
		"https://images.unsplash.com/photo-1513635269975-59663e0ac1ad"},
	{"Greece", "Ελλάδα", "Santorini", "Oia Village", "Οία", "Europe/Athens",
		"https://images.unsplash.com/photo-1533105079780-92b9be482077"},
	{"Iceland", "Ísland", "Vík", "Reynisfjara Black Sand Beach", "Reynisfjara", "Atlantic/Reykjavik",
		"https://images.unsplash.com/photo-1504829857797-ddff29c27927"},
	{"Norway", "Norge", "Lofoten", "Reine Fjord", "Reinefjorden", "Europe/Oslo",
		"https://images.unsplash.com/photo-1516410529446-2c777cb7366d"},
	{"United States", "United States", "Page", "Antelope Canyon", "Antelope Canyon", "America/Phoenix",
		"https://images.unsplash.com/photo-1474044159687-1ee9f3a51722"},
	{"United States", "United States", "New York", "Brooklyn Bridge", "Brooklyn Bridge", "America/New_York",
		"https://images.unsplash.com/photo-1496442226666-8d4d0e62e6e9"},
	{"Peru", "Perú", "Cusco", "Machu Picchu", "Machu Picchu", "America/Lima",
		"https://images.unsplash.com/photo-1526392060635-9d6019884377"},
	{"Brazil", "Brasil", "Rio de Janeiro", "Christ the Redeemer", "Cristo Redentor", "America/Sao_Paulo",
		"https://images.unsplash.com/photo-1483729558449-99ef09a8c325"},
	{"Egypt", "مصر", "Giza", "Pyramids of Giza", "أهرامات الجيزة", "Africa/Cairo",
		"https://images.unsplash.com/photo-1503177119275-0aa32b3a9368"},
	{"Morocco", "المغرب", "Marrakesh", "Jemaa el-Fnaa", "ساحة جامع الفنا", "Africa/Casablanca",
		"https://images.unsplash.com/photo-1489493585363-d69421e0edd3"},
	{"Kenya", "Kenya", "Narok", "Maasai Mara", "Maasai Mara", "Africa/Nairobi",
		"https://images.unsplash.com/photo-1547471080-7cc2caa01a7e"},
	{"Australia", "Australia", "Sydney", "Sydney Opera House", "Sydney Opera House", "Australia/Sydney",
		"https://images.unsplash.com/photo-1506973035872-a4ec16b8e8d9"},
	{"New Zealand", "Aotearoa", "Queenstown", "Lake Wakatipu", "Lake Wakatipu", "Pacific/Auckland",
		"https://images.unsplash.com/photo-1507699622108-4be3abd695ad"},
	{"Turkey", "Türkiye", "Göreme", "Cappadocia Fairy Chimneys", "Kapadokya", "Europe/Istanbul",
		"https://images.unsplash.com/photo-1528642474498-1af0c17fd8c3"},
	{"Jordan", "الأردن", "Wadi Musa", "Petra", "البتراء", "Asia/Amman",
		"https://images.unsplash.com/photo-1579606032821-4e6161c81bd3"},
	{"Bolivia", "Bolivia", "Uyuni", "Salar de Uyuni", "Salar de Uyuni", "America/La_Paz",
		"https://images.unsplash.com/photo-1520853504280-249b72dc947c"},
	{"Cambodia", "កម្ពុជា", "Siem Reap", "Angkor Wat", "អង្គរវត្ត", "Asia/Phnom_Penh",
		"https://images.unsplash.com/photo-1508009603885-50cf7c579365"},
}

// PickRandom returns a uniformly-random catalog entry using the provided
// random source.
func PickRandom(rng *rand.Rand) Location {
	return Catalog[rng.Intn(len(Catalog))]
}
