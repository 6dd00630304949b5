package ports

// ChampionCatalog maps champion ids to display data.
type ChampionCatalog interface {
	Name(championID int) string
	Icon(championID int) string
}
