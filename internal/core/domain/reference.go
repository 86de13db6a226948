package domain

// DefaultCities is the city list seeded into an empty store.
var DefaultCities = []City{
	{Name: "Warszawa", Latitude: 52.2297, Longitude: 21.0122},
	{Name: "Kraków", Latitude: 50.0647, Longitude: 19.9450},
	{Name: "Wrocław", Latitude: 51.1079, Longitude: 17.0385},
	{Name: "Poznań", Latitude: 52.4064, Longitude: 16.9252},
	{Name: "Gdańsk", Latitude: 54.3520, Longitude: 18.6466},
	{Name: "Szczecin", Latitude: 53.4285, Longitude: 14.5528},
	{Name: "Bydgoszcz", Latitude: 53.1235, Longitude: 18.0084},
	{Name: "Lublin", Latitude: 51.2465, Longitude: 22.5684},
	{Name: "Katowice", Latitude: 50.2649, Longitude: 19.0238},
	{Name: "Białystok", Latitude: 53.1325, Longitude: 23.1688},
	{Name: "Gdynia", Latitude: 54.5189, Longitude: 18.5305},
	{Name: "Częstochowa", Latitude: 50.8118, Longitude: 19.1203},
	{Name: "Radom", Latitude: 51.4027, Longitude: 21.1471},
	{Name: "Toruń", Latitude: 53.0138, Longitude: 18.5984},
	{Name: "Rzeszów", Latitude: 50.0412, Longitude: 21.9991},
	{Name: "Gliwice", Latitude: 50.2945, Longitude: 18.6714},
	{Name: "Zabrze", Latitude: 50.3249, Longitude: 18.7857},
	{Name: "Olsztyn", Latitude: 53.7784, Longitude: 20.4801},
	{Name: "Opole", Latitude: 50.6751, Longitude: 17.9213},
	{Name: "Kielce", Latitude: 50.8661, Longitude: 20.6286},
}

// DefaultKeywords is the keyword catalog seeded into an empty store.
var DefaultKeywords = []string{
	"elektronika",
	"telefony",
	"laptopy",
	"telewizory",
	"moda",
	"sukienki",
	"spodnie",
	"koszule",
	"dom i ogród",
	"meble",
	"narzędzia",
	"rośliny",
	"sport",
	"buty sportowe",
	"odzież sportowa",
	"akcesoria fitness",
	"książki",
	"gry planszowe",
	"zabawki dla dzieci",
}
