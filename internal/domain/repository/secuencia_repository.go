package repository

// SecuenciaRepository es el puerto del asignador de folios: devuelve un código
// único y no reutilizable por llamada, por ámbito (COM, CON, TRA, AJU).
type SecuenciaRepository interface {
	NextCodigo(ambito string) (string, error)
}
