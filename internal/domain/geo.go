package domain

type Country struct {
	ID   int64
	Name string
}

type City struct {
	ID        int64
	Name      string
	CountryID int64
	// CountryName is populated by list queries that join countries.
	CountryName string
}

type Airport struct {
	ID     int64
	Name   string
	CityID int64
	// CityName and CountryName are populated by detail queries.
	CityName    string
	CountryName string
}
