package element

// ElementProperties contains metadata describing an element kind
type ElementProperties struct {
	Name       string          // Full descriptive name
	ShortName  string          // Abbreviated name (e.g., "P1b")
	Type       ElementGeometry // Element shape
	Order      int             // Polynomial degree of the richest shape function
	Np         int             // Nodes per element
	NVp        int             // Vertex nodes
	NIp        int             // Strictly interior nodes
	Dimensions Dimensionality  // Spatial dimension

	// Lowest quadrature exactness accepted for spaces of this kind: products
	// of two P1 functions are quadratic, gradients of the bubble are quadratic
	// so stiffness products are quartic.
	MinQuadratureDegree int
}
