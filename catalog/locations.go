package catalog

// Country is the shipping country of every generated address.
const Country = "Tunisia"

// Location is a deliverable city with its governorate and postal code.
type Location struct {
	City        string
	Governorate string
	PostalCode  string
}

// Locations returns the delivery cities used for shipping addresses.
func Locations() []Location {
	return []Location{
		{City: "Sousse", Governorate: "Sousse", PostalCode: "4000"},
		{City: "Tunis", Governorate: "Tunis", PostalCode: "1000"},
		{City: "Sfax", Governorate: "Sfax", PostalCode: "3000"},
		{City: "Monastir", Governorate: "Monastir", PostalCode: "5000"},
		{City: "Bizerte", Governorate: "Bizerte", PostalCode: "7000"},
		{City: "Gabès", Governorate: "Gabès", PostalCode: "6000"},
		{City: "Kairouan", Governorate: "Kairouan", PostalCode: "3100"},
		{City: "Ariana", Governorate: "Ariana", PostalCode: "2080"},
		{City: "Nabeul", Governorate: "Nabeul", PostalCode: "8000"},
		{City: "Hammamet", Governorate: "Nabeul", PostalCode: "8050"},
		{City: "Mahdia", Governorate: "Mahdia", PostalCode: "5100"},
		{City: "Ben Arous", Governorate: "Ben Arous", PostalCode: "2013"},
		{City: "La Marsa", Governorate: "Tunis", PostalCode: "2070"},
		{City: "Carthage", Governorate: "Tunis", PostalCode: "2016"},
		{City: "Djerba", Governorate: "Médenine", PostalCode: "4180"},
	}
}

// StreetNames returns the street names combined with a house number to form an address line.
func StreetNames() []string {
	return []string{
		"Avenue Habib Bourguiba",
		"Rue de la Liberté",
		"Avenue de la République",
		"Rue Ibn Khaldoun",
		"Avenue Mohamed V",
		"Rue de Marseille",
		"Avenue Farhat Hached",
		"Rue de Palestine",
		"Avenue de Carthage",
		"Rue du 1er Juin",
	}
}
