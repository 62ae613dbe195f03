package rope

// solveStretch runs one Gauss-Seidel sweep of the distance constraints in
// index order. The correction is split by each particle's share of the
// combined inverse mass and relaxed by StretchStiffness.
func (r *Rope) solveStretch() {
	k := r.tuning.StretchStiffness

	for i := 0; i < r.stretchCount; i++ {
		p1 := r.ps[i]
		p2 := r.ps[i+1]

		im1 := r.ims[i]
		im2 := r.ims[i+1]
		if im1+im2 == 0 {
			continue
		}

		d := p2.Sub(p1)
		l := d.Len()
		if l == 0 {
			continue
		}
		d = d.Mul(1.0 / l)

		s1 := im1 / (im1 + im2)
		s2 := im2 / (im1 + im2)

		c := r.restLens[i] - l
		r.ps[i] = p1.Sub(d.Mul(k * s1 * c))
		r.ps[i+1] = p2.Add(d.Mul(k * s2 * c))
	}
}
