package reservation

type DepositStatus string

const (
	DepositPending  DepositStatus = "pending"
	DepositPaid     DepositStatus = "paid"
	DepositRefunded DepositStatus = "refunded"
)

func (s DepositStatus) String() string {
	return string(s)
}

func (s DepositStatus) IsValid() bool {
	switch s {
	case DepositPending, DepositPaid, DepositRefunded:
		return true
	default:
		return false
	}
}
