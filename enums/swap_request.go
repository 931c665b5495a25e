package enums

type SwapRequestStatus string

const (
	SwapRequestPending  SwapRequestStatus = "pending"
	SwapRequestAccepted SwapRequestStatus = "accepted"
	SwapRequestRejected SwapRequestStatus = "rejected"
)
