package catalog

// UserSeed is a plaintext account definition, hashed before it is persisted.
type UserSeed struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// Users returns the demo accounts: two administrators followed by the customers.
func Users() []UserSeed {
	return []UserSeed{
		{Name: "Admin Principal", Email: "admin@applestoresousse.tn", Password: "admin123", IsAdmin: true},
		{Name: "Mohamed Hosni", Email: "mohamed.hosni@applestoresousse.tn", Password: "admin123", IsAdmin: true},
		{Name: "Ahmed Ben Ali", Email: "ahmed.benali@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Fatma Trabelsi", Email: "fatma.trabelsi@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Youssef Hammami", Email: "youssef.hammami@yahoo.fr", Password: "password123", IsAdmin: false},
		{Name: "Amira Sassi", Email: "amira.sassi@hotmail.com", Password: "password123", IsAdmin: false},
		{Name: "Karim Bouazizi", Email: "karim.bouazizi@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Nour Gharbi", Email: "nour.gharbi@outlook.com", Password: "password123", IsAdmin: false},
		{Name: "Slim Mejri", Email: "slim.mejri@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Ines Chaabane", Email: "ines.chaabane@yahoo.fr", Password: "password123", IsAdmin: false},
		{Name: "Mehdi Jebali", Email: "mehdi.jebali@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Sarra Belhaj", Email: "sarra.belhaj@hotmail.com", Password: "password123", IsAdmin: false},
		{Name: "Omar Khedher", Email: "omar.khedher@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Rim Mansouri", Email: "rim.mansouri@yahoo.fr", Password: "password123", IsAdmin: false},
		{Name: "Bilel Nasr", Email: "bilel.nasr@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Hela Ferchichi", Email: "hela.ferchichi@outlook.com", Password: "password123", IsAdmin: false},
		{Name: "Tarek Jaziri", Email: "tarek.jaziri@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Mariem Souissi", Email: "mariem.souissi@hotmail.com", Password: "password123", IsAdmin: false},
		{Name: "Hamza Dridi", Email: "hamza.dridi@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Asma Tlili", Email: "asma.tlili@yahoo.fr", Password: "password123", IsAdmin: false},
		{Name: "Walid Rezgui", Email: "walid.rezgui@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Salma Brahmi", Email: "salma.brahmi@outlook.com", Password: "password123", IsAdmin: false},
		{Name: "Fares Chouchane", Email: "fares.chouchane@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Olfa Messaoud", Email: "olfa.messaoud@hotmail.com", Password: "password123", IsAdmin: false},
		{Name: "Rami Ammar", Email: "rami.ammar@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Nadia Kouki", Email: "nadia.kouki@yahoo.fr", Password: "password123", IsAdmin: false},
		{Name: "Zied Mbarki", Email: "zied.mbarki@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Leila Feki", Email: "leila.feki@outlook.com", Password: "password123", IsAdmin: false},
		{Name: "Anis Selmi", Email: "anis.selmi@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Houda Zammel", Email: "houda.zammel@hotmail.com", Password: "password123", IsAdmin: false},
		{Name: "Khaled Baccar", Email: "khaled.baccar@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Yasmine Turki", Email: "yasmine.turki@yahoo.fr", Password: "password123", IsAdmin: false},
		{Name: "Sofien Gharbi", Email: "sofien.gharbi@gmail.com", Password: "password123", IsAdmin: false},
		{Name: "Rania Ayed", Email: "rania.ayed@outlook.com", Password: "password123", IsAdmin: false},
		{Name: "Nizar Haddad", Email: "nizar.haddad@gmail.com", Password: "password123", IsAdmin: false},
	}
}
