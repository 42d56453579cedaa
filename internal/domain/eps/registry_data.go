package eps

// DefaultEntities lists the EPS authorized in the Colombian SGSSS
// (contributory and subsidized regimes) with their common name variants.
// Order matters: matching stops at the first hit.
func DefaultEntities() []Entity {
	return []Entity{
		{Official: "SURA", Variants: []string{"sura", "eps suramericana", "suramericana", "eps sura"}},
		{Official: "SANITAS", Variants: []string{"sanitas", "eps sanitas"}},
		{Official: "NUEVA EPS", Variants: []string{"nueva eps", "neps"}},
		{Official: "SALUD TOTAL", Variants: []string{"salud total", "eps salud total", "saludtotal", "salud total eps"}},
		{Official: "COMPENSAR", Variants: []string{"compensar", "eps compensar", "compensar eps"}},
		{Official: "FAMISANAR", Variants: []string{"famisanar", "eps famisanar", "cafam", "colsubsidio"}},
		// In liquidation, but still shows up on older certificates.
		{Official: "COOMEVA", Variants: []string{"coomeva", "eps coomeva", "coomeva eps"}},
		{Official: "ALIANSALUD", Variants: []string{"aliansalud", "eps aliansalud"}},
		{Official: "S.O.S", Variants: []string{"sos", "servicio occidental de salud", "s.o.s eps"}},
		{Official: "MUTUAL SER", Variants: []string{"mutual ser", "mutualser", "eps mutual ser"}},
		{Official: "ASMET SALUD", Variants: []string{"asmet salud", "asmetsalud", "eps asmet salud"}},
		{Official: "CAJACOPI", Variants: []string{"cajacopi", "eps cajacopi", "cajacopi eps"}},
		{Official: "CAPITAL SALUD", Variants: []string{"capital salud", "eps capital salud", "capitalsalud"}},
		{Official: "COMFAORIENTE", Variants: []string{"comfaoriente", "eps comfaoriente"}},
		{Official: "SAVIA SALUD", Variants: []string{"savia salud", "eps savia salud", "saviasalud"}},
		{Official: "EMSSANAR", Variants: []string{"emssanar", "eps emssanar"}},
		{Official: "MALLAMAS", Variants: []string{"mallamas", "eps mallamas", "mallamas epsi"}},
		{Official: "AIC", Variants: []string{"aic", "asociacion indigena del cauca", "eps aic"}},
		{Official: "PIJAOS", Variants: []string{"pijaos", "eps pijaos salud", "pijaos salud"}},
		{Official: "DUSAKAWI", Variants: []string{"dusakawi", "eps dusakawi"}},
		{Official: "ANAS WAYUU", Variants: []string{"anas wayuu", "eps anas wayuu", "anaswayuu"}},
	}
}
