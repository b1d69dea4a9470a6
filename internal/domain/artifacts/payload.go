package artifacts

import "eohealth-registry/internal/domain/children"

// Los dos call sites históricos arman el payload del QR distinto y hay
// consumidores escaneando ambos formatos, así que se mantienen las dos
// variantes sin unificar (decisión registrada en DESIGN.md).

// CardPayload es la variante de la tarjeta digital y del certificado:
// smart id + national id separados por pipe.
func CardPayload(c children.Child) string {
	return c.SmartID + "|" + c.NationalID
}

// RegistrationPayload es la variante que muestra el flujo de registro:
// incluye además el nombre completo.
func RegistrationPayload(c children.Child) string {
	return c.SmartID + "|" + c.FullName + "|" + c.NationalID
}
