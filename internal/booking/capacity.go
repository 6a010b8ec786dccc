package booking

// CapacityTracker считает занятые места одного занятия
// Не потокобезопасен: все вызовы выполняются под блокировкой занятия
type CapacityTracker struct {
	capacity  int
	confirmed int
}

// NewCapacityTracker создает трекер с уже подтверждёнными бронированиями
func NewCapacityTracker(capacity, confirmed int) *CapacityTracker {
	if confirmed < 0 {
		confirmed = 0
	}
	return &CapacityTracker{
		capacity:  capacity,
		confirmed: confirmed,
	}
}

// Capacity возвращает общее количество мест
func (c *CapacityTracker) Capacity() int {
	return c.capacity
}

// Confirmed возвращает количество подтверждённых бронирований
func (c *CapacityTracker) Confirmed() int {
	return c.confirmed
}

// AvailableSeats возвращает количество свободных мест (не меньше 0)
func (c *CapacityTracker) AvailableSeats() int {
	if free := c.capacity - c.confirmed; free > 0 {
		return free
	}
	return 0
}

// TryReserveSeat занимает место, если оно есть
// При отсутствии мест ничего не меняет и возвращает false
func (c *CapacityTracker) TryReserveSeat() bool {
	if c.confirmed >= c.capacity {
		return false
	}
	c.confirmed++
	return true
}

// ReleaseSeat освобождает место, счётчик не уходит ниже 0
func (c *CapacityTracker) ReleaseSeat() {
	if c.confirmed > 0 {
		c.confirmed--
	}
}
