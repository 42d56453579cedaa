package cie10

// DefaultEntries covers the CIE-10 codes that legitimately appear on
// Colombian leave certificates, with typical day ranges from
// occupational-medicine protocols. Config may replace this table wholesale;
// it cannot patch individual rows.
func DefaultEntries() map[string]Entry {
	return map[string]Entry{
		// Infectious diseases
		"A09": {Description: "Diarrea y gastroenteritis de presunto origen infeccioso", MinDays: 1, MaxDays: 5},
		"A90": {Description: "Fiebre del dengue (dengue clásico)", MinDays: 5, MaxDays: 14},
		"A91": {Description: "Fiebre del dengue hemorrágico", MinDays: 7, MaxDays: 21},
		"B34": {Description: "Enfermedad viral no especificada", MinDays: 3, MaxDays: 7},
		// Neoplasms
		"C50": {Description: "Tumor maligno de la mama", MinDays: 30, MaxDays: 180},
		"D25": {Description: "Leiomioma del útero", MinDays: 15, MaxDays: 60},
		// Endocrine
		"E11": {Description: "Diabetes mellitus tipo 2", MinDays: 3, MaxDays: 30},
		"E66": {Description: "Obesidad", MinDays: 3, MaxDays: 15},
		// Mental and behavioural
		"F32": {Description: "Episodio depresivo", MinDays: 7, MaxDays: 90},
		"F33": {Description: "Trastorno depresivo recurrente", MinDays: 15, MaxDays: 90},
		"F41": {Description: "Otros trastornos de ansiedad", MinDays: 5, MaxDays: 30},
		"F43": {Description: "Reacciones a estrés grave y trastornos de adaptación", MinDays: 5, MaxDays: 30},
		// Nervous system
		"G43": {Description: "Migraña", MinDays: 1, MaxDays: 5},
		"G44": {Description: "Otros síndromes de cefalea", MinDays: 1, MaxDays: 3},
		"G56": {Description: "Mononeuropatías del miembro superior (túnel carpiano)", MinDays: 15, MaxDays: 60},
		// Eye and ear
		"H10": {Description: "Conjuntivitis", MinDays: 2, MaxDays: 7},
		"H66": {Description: "Otitis media supurativa y la no especificada", MinDays: 3, MaxDays: 7},
		// Circulatory system
		"I10": {Description: "Hipertensión esencial (primaria)", MinDays: 3, MaxDays: 15},
		"I20": {Description: "Angina de pecho", MinDays: 7, MaxDays: 30},
		"I63": {Description: "Infarto cerebral", MinDays: 30, MaxDays: 180},
		"I64": {Description: "Accidente vascular encefálico agudo no especificado", MinDays: 30, MaxDays: 180},
		// Respiratory system
		"J00": {Description: "Rinofaringitis aguda (resfriado común)", MinDays: 1, MaxDays: 3},
		"J01": {Description: "Sinusitis aguda", MinDays: 3, MaxDays: 7},
		"J02": {Description: "Faringitis aguda", MinDays: 2, MaxDays: 5},
		"J03": {Description: "Amigdalitis aguda", MinDays: 3, MaxDays: 7},
		"J06": {Description: "Infecciones agudas de las vías respiratorias superiores", MinDays: 3, MaxDays: 7},
		"J11": {Description: "Influenza con virus no identificado", MinDays: 5, MaxDays: 10},
		"J18": {Description: "Neumonía organismo no especificado", MinDays: 7, MaxDays: 21},
		"J20": {Description: "Bronquitis aguda", MinDays: 5, MaxDays: 10},
		"J45": {Description: "Asma", MinDays: 3, MaxDays: 14},
		// Digestive system
		"K21": {Description: "Enfermedad de reflujo gastroesofágico", MinDays: 3, MaxDays: 7},
		"K25": {Description: "Úlcera gástrica", MinDays: 5, MaxDays: 15},
		"K29": {Description: "Gastritis y duodenitis", MinDays: 2, MaxDays: 7},
		"K35": {Description: "Apendicitis aguda", MinDays: 10, MaxDays: 30},
		"K40": {Description: "Hernia inguinal", MinDays: 15, MaxDays: 30},
		"K80": {Description: "Colelitiasis", MinDays: 10, MaxDays: 30},
		// Skin
		"L02": {Description: "Absceso cutáneo, furúnculo y ántrax", MinDays: 3, MaxDays: 10},
		"L03": {Description: "Celulitis", MinDays: 5, MaxDays: 14},
		// Musculoskeletal system
		"M23": {Description: "Trastorno interno de la rodilla", MinDays: 15, MaxDays: 60},
		"M25": {Description: "Otros trastornos articulares", MinDays: 5, MaxDays: 30},
		"M54": {Description: "Dorsalgia (dolor de espalda)", MinDays: 3, MaxDays: 15},
		"M54.5": {Description: "Lumbago no especificado", MinDays: 3, MaxDays: 15},
		"M65": {Description: "Sinovitis y tenosinovitis", MinDays: 7, MaxDays: 21},
		"M75": {Description: "Lesiones del hombro", MinDays: 10, MaxDays: 45},
		"M79": {Description: "Otros trastornos de los tejidos blandos", MinDays: 3, MaxDays: 15},
		// Genitourinary system
		"N30": {Description: "Cistitis (infección urinaria)", MinDays: 2, MaxDays: 5},
		"N39": {Description: "Otros trastornos del sistema urinario", MinDays: 2, MaxDays: 7},
		"N76": {Description: "Otras afecciones inflamatorias de la vagina y de la vulva", MinDays: 3, MaxDays: 7},
		// Pregnancy and childbirth
		"O20": {Description: "Hemorragia precoz del embarazo", MinDays: 7, MaxDays: 30},
		"O21": {Description: "Vómitos excesivos en el embarazo", MinDays: 5, MaxDays: 15},
		"O47": {Description: "Falso trabajo de parto", MinDays: 2, MaxDays: 7},
		"O80": {Description: "Parto único espontáneo", MinDays: 56, MaxDays: 126},
		"O82": {Description: "Parto único por cesárea", MinDays: 56, MaxDays: 126},
		// Perinatal period
		"P07": {Description: "Trastornos relacionados con duración corta de la gestación", MinDays: 30, MaxDays: 90},
		// Injuries
		"S02": {Description: "Fractura de huesos del cráneo y de la cara", MinDays: 15, MaxDays: 60},
		"S32": {Description: "Fractura de columna lumbar y de la pelvis", MinDays: 30, MaxDays: 90},
		"S42": {Description: "Fractura del hombro y del brazo", MinDays: 30, MaxDays: 90},
		"S52": {Description: "Fractura del antebrazo", MinDays: 30, MaxDays: 90},
		"S62": {Description: "Fractura a nivel de la muñeca y de la mano", MinDays: 21, MaxDays: 60},
		"S72": {Description: "Fractura del fémur", MinDays: 45, MaxDays: 120},
		"S82": {Description: "Fractura de la pierna incluso el tobillo", MinDays: 30, MaxDays: 90},
		"S83": {Description: "Luxación esguince y torcedura de articulaciones de la rodilla", MinDays: 7, MaxDays: 45},
		"S93": {Description: "Luxación esguince y torcedura de articulaciones del tobillo", MinDays: 5, MaxDays: 30},
		"T14": {Description: "Traumatismo de regiones del cuerpo no especificadas", MinDays: 3, MaxDays: 15},
		// Contact with health services
		"Z34": {Description: "Supervisión de embarazo normal", MinDays: 1, MaxDays: 3},
		"Z76": {Description: "Personas en contacto con los servicios de salud en otras circunstancias", MinDays: 1, MaxDays: 5},
	}
}
