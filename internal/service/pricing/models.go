package pricing

// Selection состояние выбора клиента, влияющее на условные цены
type Selection struct {
	ServiceIDs            []string
	IsBlueLightCardHolder bool
}

// contains проверяет наличие услуги в выборе
func (s *Selection) contains(id string) bool {
	for _, v := range s.ServiceIDs {
		if v == id {
			return true
		}
	}
	return false
}
