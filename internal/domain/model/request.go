package model

import "fmt"

// BoxRequest asks for Count identical cartons of one product to be loaded.
//
// @Description Cartons of a single product to load
type BoxRequest struct {
	// Name identifies the product; unique within a simulation.
	Name string `json:"name" example:"Product 1"`
	// Carton is the outer carton size in its original orientation.
	Carton Dimension `json:"carton"`
	// PerCarton is the number of product units packed into one carton.
	PerCarton int `json:"per_carton" example:"20"`
	// OrderQty is the number of product units ordered.
	OrderQty int `json:"order_qty" example:"200"`
	// Count is the number of cartons to load.
	Count int `json:"count" example:"10"`
} // @name BoxRequest

// NewBoxRequest builds a request for orderQty units packed perCarton to a
// carton. Count is ceil(orderQty / perCarton); non-positive quantities give a
// zero count which fails validation downstream.
func NewBoxRequest(name string, carton Dimension, perCarton, orderQty int) BoxRequest {
	return BoxRequest{
		Name:      name,
		Carton:    carton,
		PerCarton: perCarton,
		OrderQty:  orderQty,
		Count:     CartonCount(orderQty, perCarton),
	}
}

// CartonCount returns ceil(orderQty / perCarton), or 0 when either is not positive.
func CartonCount(orderQty, perCarton int) int {
	if orderQty <= 0 || perCarton <= 0 {
		return 0
	}
	n := orderQty / perCarton
	if orderQty%perCarton != 0 {
		n++
	}
	return n
}

// DefaultName is the display name given to the i-th (zero based) unnamed request.
func DefaultName(i int) string {
	return fmt.Sprintf("Product %d", i+1)
}

// UnitsShipped returns the product units contained in n cartons. Requests
// built without a per-carton quantity count one unit per carton.
func (r BoxRequest) UnitsShipped(n int) int {
	if r.PerCarton <= 0 {
		return n
	}
	return n * r.PerCarton
}
