// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mel

import (
	"math"

	"github.com/emer/etable/etensor"
	"gonum.org/v1/gonum/dsp/fourier"
)

// FilterBank contains mel frequency feature bank sampling parameters
type FilterBank struct {
	NFilters    int     `view:"+" def:"32,26" desc:"number of Mel frequency filters to compute"`
	LoHz        float64 `view:"+" def:"120,300" step:"10.0" desc:"low frequency end of mel frequency spectrum"`
	HiHz        float64 `view:"+" def:"10000,8000" step:"1000.0" desc:"high frequency end of mel frequency spectrum -- must be <= sample_rate / 2 (i.e., less than the Nyquist frequencY"`
	LogOff      float64 `view:"+" def:"0" desc:"on add this amount when taking the log of the Mel filter sums to produce the filter-bank output -- e.g., 1.0 makes everything positive -- affects the relative contrast of the outputs"`
	LogMin      float64 `view:"+" def:"-10" desc:"minimum value a log can produce -- puts a lower limit on log output"`
	Renorm      bool    `desc:" whether to perform renormalization of the mel values"`
	RenormMin   float64 `viewif:"Renorm" step:"1.0" desc:"minimum value to use for renormalization -- you must experiment with range of inputs to determine appropriate values"`
	RenormMax   float64 `viewif:"Renorm" step:"1.0" desc:"maximum value to use for renormalization -- you must experiment with range of inputs to determine appropriate values"`
	RenormScale float64 `view:"-" desc:"1.0 / (ren_max - ren_min)"`
}

// Defaults initializes FBank values - these are the ones you most likely need to adjust for your particular signals
func (mfb *FilterBank) Defaults() {
	mfb.LoHz = 0
	mfb.HiHz = 8000.0
	mfb.NFilters = 32
	mfb.LogOff = 0.0
	mfb.LogMin = -10.0
	mfb.Renorm = false
	mfb.RenormMin = -6.0
	mfb.RenormMax = 4.0
}

// Params holds the filter bank and its filters for one dft size
type Params struct {
	FBank   FilterBank      `view:"inline"`
	BinPts  []int32         `view:"-" desc:" mel scale points in fft bins"`
	HzPts   []float64       `view:"-" desc:" mel scale points in hz"`
	Filters etensor.Float32 `view:"-" desc:" triangular filter weights, one row per filter starting at its low bin"`
	MFCC    bool            `view:"+" def:"false" desc:" compute cepstrum discrete cosine transform (dct) of the mel-frequency filter bank features"`
	NCoefs  int             `viewif:"MFCC" def:"13" desc:" number of mfcc coefficients to output -- typically 1/2 of the number of filterbank features"`

	dct *fourier.DCT
}

// Defaults
func (mel *Params) Defaults() {
	mel.MFCC = false
	mel.NCoefs = 13
	mel.FBank.Defaults()
}

// InitFilters computes the filter bin values for a dft of dftSize samples.
// HiHz is limited to the Nyquist frequency.
func (mel *Params) InitFilters(dftSize int, sampleRate int) {
	nf := mel.FBank.NFilters
	mel.BinPts = make([]int32, nf+2) // plus 2 because we need end points to create the right number of bins
	mel.HzPts = make([]float64, nf+2)
	if mel.FBank.Renorm {
		mel.FBank.RenormScale = 1.0 / (mel.FBank.RenormMax - mel.FBank.RenormMin)
	}

	hiHz := math.Min(mel.FBank.HiHz, float64(sampleRate)/2)
	hiMel := FreqToMel(hiHz)
	loMel := FreqToMel(mel.FBank.LoHz)
	incr := (hiMel - loMel) / float64(nf+1)
	maxBin := dftSize / 2

	for i := 0; i < len(mel.BinPts); i++ {
		ml := loMel + float64(i)*incr
		hz := MelToFreq(ml)
		mel.HzPts[i] = hz
		bin := FreqToBin(hz, float64(dftSize), float64(sampleRate))
		if bin > maxBin {
			bin = maxBin
		}
		mel.BinPts[i] = int32(bin)
	}

	width := 1
	for f := 0; f < nf; f++ {
		if w := int(mel.BinPts[f+2]-mel.BinPts[f]) + 1; w > width {
			width = w
		}
	}
	mel.Filters.SetShape([]int{nf, width}, nil, nil)
	mel.Filters.SetZeros()

	for f := 0; f < nf; f++ {
		binMin := int(mel.BinPts[f])
		binCtr := int(mel.BinPts[f+1])
		binMax := int(mel.BinPts[f+2])
		pkmin := float64(binCtr) - float64(binMin)
		pkmax := float64(binMax) - float64(binCtr)

		fi := 0
		bin := 0
		for bin = binMin; bin <= binCtr; bin, fi = bin+1, fi+1 {
			fval := 1.0
			if pkmin > 0 {
				fval = (float64(bin) - float64(binMin)) / pkmin
			}
			mel.Filters.SetFloat([]int{f, fi}, fval)
		}
		for ; bin <= binMax; bin, fi = bin+1, fi+1 {
			fval := (float64(binMax) - float64(bin)) / pkmax
			mel.Filters.SetFloat([]int{f, fi}, fval)
		}
	}
	if mel.MFCC {
		mel.dct = fourier.NewDCT(nf)
	}
}

// CenterHz returns the center frequency of filter f
func (mel *Params) CenterHz(f int) float64 {
	return mel.HzPts[f+1]
}

// FilterDft applies the mel filters to the power of a dft, writing the log
// energy of each filter to fBank
func (mel *Params) FilterDft(power *etensor.Float32, fBank *etensor.Float32) {
	nf := mel.FBank.NFilters
	if fBank.Len() != nf {
		fBank.SetShape([]int{nf}, nil, nil)
	}
	for flt := 0; flt < nf; flt++ {
		minBin := int(mel.BinPts[flt])
		maxBin := int(mel.BinPts[flt+2])

		sum := 0.0
		fi := 0
		for bin := minBin; bin <= maxBin && bin < power.Len(); bin, fi = bin+1, fi+1 {
			sum += mel.Filters.FloatVal([]int{flt, fi}) * power.FloatVal1D(bin)
		}
		sum += mel.FBank.LogOff
		var val float64
		if sum == 0 {
			val = mel.FBank.LogMin
		} else {
			val = math.Max(mel.FBank.LogMin, math.Log(sum))
		}
		if mel.FBank.Renorm {
			val -= mel.FBank.RenormMin
			if val < 0.0 {
				val = 0.0
			}
			val *= mel.FBank.RenormScale
			if val > 1.0 {
				val = 1.0
			}
		}
		fBank.SetFloat1D(flt, val)
	}
}

// CepstrumDct applies a discrete cosine transform (DCT) to the mel
// filterbank values, writing NCoefs cepstrum coefficients to mfcc.
// Coefficient 0 is replaced with the log energy. Requires MFCC to be on
// when InitFilters is called.
func (mel *Params) CepstrumDct(fBank *etensor.Float32, mfcc *etensor.Float32) {
	src := make([]float64, fBank.Len())
	for i := range src {
		src[i] = fBank.FloatVal1D(i)
	}
	out := mel.dct.Transform(nil, src)
	el0 := out[0]
	out[0] = math.Log(1.0 + el0*el0)

	if mfcc.Len() != mel.NCoefs {
		mfcc.SetShape([]int{mel.NCoefs}, nil, nil)
	}
	for i := 0; i < mel.NCoefs && i < len(out); i++ {
		mfcc.SetFloat1D(i, out[i])
	}
}

// FreqToMel converts frequency to mel scale
func FreqToMel(freq float64) float64 {
	return 1127.0 * math.Log(1.0+freq/700.0) // 1127 because we are using natural log
}

// MelToFreq converts mel scale to frequency
func MelToFreq(mel float64) float64 {
	return 700.0 * (math.Exp(mel/1127.0) - 1.0)
}

// FreqToBin converts frequency into FFT bin number, using parameters of number of FFT bins and sample rate
func FreqToBin(freq, nFft, sampleRate float64) int {
	return int(math.Floor(((nFft + 1) * freq) / sampleRate))
}
