package models

// DeliveryReceipt описывает завершенную доставку подтверждения.
type DeliveryReceipt struct {
	// MessageID письма, отправленного участнику
	MessageID  string   `json:"messageId"`
	Recipients []string `json:"recipients"`
}
