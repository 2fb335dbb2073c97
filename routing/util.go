package routing

type DistFlag struct {
	Dist float32
}

func (self *DistFlag) GetDist() float32 {
	return self.Dist
}

type PQItem struct {
	item int32
	dist float32
}
