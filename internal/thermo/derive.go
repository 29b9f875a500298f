package thermo

import (
	"github.com/rotisserie/eris"

	"github.com/h204812/meltpoint/internal/table"
)

// DerivePerAtom adds PE_per_atom and E_per_atom columns: the extensive
// energies divided by the simulated atom count.
func DerivePerAtom(t *table.Table, atoms int) error {
	if atoms <= 0 {
		return eris.Wrapf(table.ErrInvalidConfiguration, "thermo: atom count must be positive, got %d", atoms)
	}

	pot, err := t.Column("PotEng")
	if err != nil {
		return eris.Wrap(err, "thermo: derive per-atom")
	}
	tot, err := t.Column("TotEng")
	if err != nil {
		return eris.Wrap(err, "thermo: derive per-atom")
	}

	n := float64(atoms)
	pe := make([]float64, len(pot))
	e := make([]float64, len(tot))
	for i := range pot {
		pe[i] = pot[i] / n
		e[i] = tot[i] / n
	}

	if err := t.AddColumn(ColPEPerAtom, pe); err != nil {
		return err
	}
	return t.AddColumn(ColEPerAtom, e)
}
