package repository

// SequenceRepository fournit la numérotation monotone des documents,
// par type et par exercice. Un compteur dédié évite les collisions du
// count(*)+1 après suppression.
type SequenceRepository interface {
	Next(docType string, year int) (int, error)
}
