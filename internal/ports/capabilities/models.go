package capabilities

// CapabilityCheck es la consulta mínima al resolver de planes:
// ¿este usuario tiene habilitada esta capability?
type CapabilityCheck struct {
	UserID     string
	Capability string
}
