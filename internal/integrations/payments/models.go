package payments

// ChargeRequest параметры списания за заказ
type ChargeRequest struct {
	OrderRef  string  // ссылка на заказ для metadata шлюза
	Amount    float64 // сумма в основных единицах валюты
	CardToken string  // одноразовый токен карты от фронтенда
}

// ChargeResult результат успешного списания
type ChargeResult struct {
	ChargeID string
	Amount   float64
	Currency string
}
