package mixed

import "math"

const (
	compressorMaxDelay       = 1024
	compressorSamplesPerTick = 32
	compressorSpacing        = 5.0
)

func compAdaptiveRelease(x, a, b, c, d float32) float32 {
	x2 := x * x
	return a*x2*x + b*x2 + c*x + d
}

func compClamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func compFix(v, def float32) float32 {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return v
}

func compDBToLin(db float32) float32 { return float32(math.Pow(10, float64(db)*0.05)) }
func compLinToDB(lin float32) float32 {
	return 20.0 * float32(math.Log10(float64(lin)))
}

func compKneeCurve(x, k, linearThreshold float32) float32 {
	return linearThreshold + (1-float32(math.Exp(float64(-k*(x-linearThreshold)))))/k
}

func compKneeSlope(x, k, linearThreshold float32) float32 {
	return k * x / ((k*linearThreshold+1)*float32(math.Exp(float64(k*(x-linearThreshold)))) - 1)
}

func compCurve(x, k, slope, linearThreshold, linearThresholdKnee, threshold, knee, kneeDBOffset float32) float32 {
	if x < linearThreshold {
		return x
	}
	if knee <= 0 {
		return compDBToLin(threshold + slope*(compLinToDB(x)-threshold))
	}
	if x < linearThresholdKnee {
		return compKneeCurve(x, k, linearThreshold)
	}
	return compDBToLin(kneeDBOffset + slope*(compLinToDB(x)-threshold-knee))
}

// ReleaseZone is the four-point adaptive release envelope used to fit
// the compressor's cubic release curve (see Compressor.reinit).
type ReleaseZone [4]float32

// Compressor is a feed-forward dynamic range compressor with a
// predelay line, soft-knee gain curve, and adaptive release envelope.
type Compressor struct {
	baseProcessor
	in, out *Buffer

	Samplerate  int
	Pregain     float32
	Threshold   float32
	Knee        float32
	Ratio       float32
	Attack      float32
	Release     float32
	Predelay    float32
	ReleaseZone ReleaseZone
	Postgain    float32
	Wet         float32

	// MeterGain reports, in dB, how much the compressor would like to
	// attenuate the last processed chunk. Informational only.
	MeterGain float32

	meterRelease         float32
	linearPregain        float32
	linearThreshold      float32
	slope                float32
	attackSamplesInv     float32
	satReleaseSamplesInv float32
	dry                  float32
	k                    float32
	kneeDBOffset         float32
	linearThresholdKnee  float32
	masterGain           float32
	a, b, c, d           float32
	detectorAvg          float32
	compGain             float32
	maxCompDiffDB        float32
	delay                []float32
	delayWritePos        int
	delayReadPos         int
}

// NewCompressor creates a Compressor with the reference library's
// default settings (a mild, musical bus compressor).
func NewCompressor(samplerate int) *Compressor {
	c := &Compressor{
		Samplerate:  samplerate,
		Pregain:     0,
		Threshold:   -24,
		Knee:        30,
		Ratio:       12,
		Attack:      0.003,
		Release:     0.25,
		Predelay:    0.006,
		ReleaseZone: ReleaseZone{0.1, 0.3, 0.6, 1.0},
		Postgain:    0,
		Wet:         1,
	}
	c.reinit()
	return c
}

// reinit recomputes every derived coefficient from the raw settings.
// Mirrors the reference implementation's compressor_reinit exactly,
// including its adaptive-release cubic fit and knee-k binary search.
func (c *Compressor) reinit() {
	rate := c.Samplerate
	delaySize := int(float32(rate) * c.Predelay)
	if delaySize < 1 {
		delaySize = 1
	} else if delaySize > compressorMaxDelay {
		delaySize = compressorMaxDelay
	}
	c.delay = make([]float32, delaySize)

	c.linearPregain = compDBToLin(c.Pregain)
	c.linearThreshold = compDBToLin(c.Threshold)
	c.slope = 1.0 / c.Ratio
	attackSamples := float32(rate) * c.Attack
	c.attackSamplesInv = 1.0 / attackSamples
	releaseSamples := float32(rate) * c.Release
	const satRelease = 0.0025
	c.satReleaseSamplesInv = 1.0 / (float32(rate) * satRelease)
	c.dry = 1.0 - c.Wet

	c.MeterGain = 1.0
	const meterFalloff = 0.325
	c.meterRelease = 1.0 - float32(math.Exp(-1.0/(float64(rate)*meterFalloff)))

	c.k = 5.0
	c.kneeDBOffset = 0
	c.linearThresholdKnee = 0
	if c.Knee > 0 {
		xknee := compDBToLin(c.Threshold + c.Knee)
		mink, maxk := float32(0.1), float32(10000.0)
		k := c.k
		for i := 0; i < 15; i++ {
			if compKneeSlope(xknee, k, c.linearThreshold) < c.slope {
				maxk = k
			} else {
				mink = k
			}
			k = float32(math.Sqrt(float64(mink) * float64(maxk)))
		}
		c.k = k
		c.kneeDBOffset = compLinToDB(compKneeCurve(xknee, k, c.linearThreshold))
		c.linearThresholdKnee = compDBToLin(c.Threshold + c.Knee)
	}

	fullLevel := compCurve(1.0, c.k, c.slope, c.linearThreshold, c.linearThresholdKnee, c.Threshold, c.Knee, c.kneeDBOffset)
	c.masterGain = compDBToLin(c.Postgain) * float32(math.Pow(float64(1.0/fullLevel), 0.6))

	y1 := releaseSamples * c.ReleaseZone[0]
	y2 := releaseSamples * c.ReleaseZone[1]
	y3 := releaseSamples * c.ReleaseZone[2]
	y4 := releaseSamples * c.ReleaseZone[3]
	c.a = (-y1 + 3*y2 - 3*y3 + y4) / 6.0
	c.b = y1 - 2.5*y2 + 2.0*y3 - 0.5*y4
	c.c = (-11*y1 + 18*y2 - 9*y3 + 2*y4) / 6.0
	c.d = y1

	c.detectorAvg = 0
	c.compGain = 1
	c.maxCompDiffDB = -1
	c.delayWritePos = 0
	if len(c.delay) > 1 {
		c.delayReadPos = 1
	} else {
		c.delayReadPos = 0
	}
}

func (c *Compressor) Start() error {
	c.MeterGain = 1.0
	c.detectorAvg = 0
	c.compGain = 1
	c.maxCompDiffDB = -1
	c.delayWritePos = 0
	if len(c.delay) > 1 {
		c.delayReadPos = 1
	} else {
		c.delayReadPos = 0
	}
	c.start()
	return nil
}
func (c *Compressor) End() error { c.end(); return nil }

func (c *Compressor) Mix(samples int) error {
	if c.bypass {
		return CopyBuffer(c.out, c.in, samples)
	}
	if c.in == nil || c.out == nil {
		return newErr("Mix", KindMixingFailed, "compressor requires wired in/out")
	}

	const ang90 = math.Pi / 2
	const ang90inv = 2.0 / math.Pi

	input := c.in.RequestRead(samples)
	output := c.out.RequestWrite(len(input))
	n := len(output)
	if len(input) < n {
		n = len(input)
	}

	chunks := n / compressorSamplesPerTick
	n = chunks * compressorSamplesPerTick

	delayBuf := c.delay
	delaySize := len(delayBuf)
	writePos, readPos := c.delayWritePos, c.delayReadPos
	detectorAvg := c.detectorAvg
	compGain := c.compGain
	maxCompDiffDB := c.maxCompDiffDB
	metergain := c.MeterGain

	samplePos := 0
	for ch := 0; ch < chunks; ch++ {
		detectorAvg = compFix(detectorAvg, 1.0)
		desiredGain := detectorAvg
		scaledDesiredGain := float32(math.Asin(float64(desiredGain))) * ang90inv
		compDiffDB := compLinToDB(compGain / scaledDesiredGain)

		var envelopeRate float32
		if compDiffDB < 0 {
			compDiffDB = compFix(compDiffDB, -1.0)
			maxCompDiffDB = -1
			x := (compClamp(compDiffDB, -12.0, 0.0) + 12.0) * 0.25
			releaseSamples := compAdaptiveRelease(x, c.a, c.b, c.c, c.d)
			envelopeRate = compDBToLin(compressorSpacing / releaseSamples)
		} else {
			compDiffDB = compFix(compDiffDB, 1.0)
			if maxCompDiffDB == -1 || maxCompDiffDB < compDiffDB {
				maxCompDiffDB = compDiffDB
			}
			attenuate := maxCompDiffDB
			if attenuate < 0.5 {
				attenuate = 0.5
			}
			envelopeRate = 1.0 - float32(math.Pow(0.25/float64(attenuate), float64(c.attackSamplesInv)))
		}

		for chi := 0; chi < compressorSamplesPerTick; chi, samplePos = chi+1, samplePos+1 {
			inputL := input[samplePos] * c.linearPregain
			delayBuf[writePos] = inputL

			if inputL < 0 {
				inputL = -inputL
			}

			var attenuation float32
			if inputL < 0.0001 {
				attenuation = 1.0
			} else {
				inputComp := compCurve(inputL, c.k, c.slope, c.linearThreshold, c.linearThresholdKnee, c.Threshold, c.Knee, c.kneeDBOffset)
				attenuation = inputComp / inputL
			}

			var rate float32
			if attenuation > detectorAvg {
				attenuationDB := -compLinToDB(attenuation)
				if attenuationDB < 2.0 {
					attenuationDB = 2.0
				}
				dbPerSample := attenuationDB * c.satReleaseSamplesInv
				rate = compDBToLin(dbPerSample) - 1.0
			} else {
				rate = 1.0
			}

			detectorAvg += (attenuation - detectorAvg) * rate
			if detectorAvg > 1.0 {
				detectorAvg = 1.0
			}
			detectorAvg = compFix(detectorAvg, 1.0)

			if envelopeRate < 1 {
				compGain += (scaledDesiredGain - compGain) * envelopeRate
			} else {
				compGain *= envelopeRate
				if compGain > 1.0 {
					compGain = 1.0
				}
			}

			premixGain := float32(math.Sin(float64(ang90 * compGain)))
			gain := c.dry + c.Wet*c.masterGain*premixGain

			premixGainDB := compLinToDB(premixGain)
			if premixGainDB < metergain {
				metergain = premixGainDB
			} else {
				metergain += (premixGainDB - metergain) * c.meterRelease
			}

			output[samplePos] = delayBuf[readPos] * gain

			readPos = (readPos + 1) % delaySize
			writePos = (writePos + 1) % delaySize
		}
	}

	c.MeterGain = metergain
	c.detectorAvg = detectorAvg
	c.compGain = compGain
	c.maxCompDiffDB = maxCompDiffDB
	c.delayWritePos = writePos
	c.delayReadPos = readPos

	c.in.FinishRead(n)
	c.out.FinishWrite(n)
	return nil
}

func (c *Compressor) SetIn(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetIn", KindInvalidLocation, "location %d", index)
	}
	c.in = buffer
	return nil
}

func (c *Compressor) SetOut(index int, buffer *Buffer) error {
	if index != 0 {
		return newErr("SetOut", KindInvalidLocation, "location %d", index)
	}
	c.out = buffer
	return nil
}

func (c *Compressor) Get(field Field) (any, error) {
	switch field {
	case FieldBypass:
		return c.getBypass()
	case FieldPregain:
		return c.Pregain, nil
	case FieldThreshold:
		return c.Threshold, nil
	case FieldKnee:
		return c.Knee, nil
	case FieldRatio:
		return c.Ratio, nil
	case FieldAttack:
		return c.Attack, nil
	case FieldRelease:
		return c.Release, nil
	case FieldPredelay:
		return c.Predelay, nil
	case FieldReleaseZone:
		return c.ReleaseZone, nil
	case FieldPostgain:
		return c.Postgain, nil
	case FieldWet:
		return c.Wet, nil
	case FieldMeterGain:
		return c.MeterGain, nil
	default:
		return nil, newErr("Get", KindInvalidField, "Compressor has no field %v", field)
	}
}

func (c *Compressor) Set(field Field, value any) error {
	switch field {
	case FieldBypass:
		return c.setBypass(value)
	case FieldPregain:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldPregain wants float32")
		}
		c.Pregain = v
		c.reinit()
	case FieldThreshold:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldThreshold wants float32")
		}
		c.Threshold = v
		c.reinit()
	case FieldKnee:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldKnee wants a non-negative float32")
		}
		c.Knee = v
		c.reinit()
	case FieldRatio:
		v, ok := value.(float32)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldRatio wants a positive float32")
		}
		c.Ratio = v
		c.reinit()
	case FieldAttack:
		v, ok := value.(float32)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldAttack wants a positive float32")
		}
		c.Attack = v
		c.reinit()
	case FieldRelease:
		v, ok := value.(float32)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldRelease wants a positive float32")
		}
		c.Release = v
		c.reinit()
	case FieldPredelay:
		v, ok := value.(float32)
		if !ok || v < 0 {
			return newErr("Set", KindInvalidValue, "FieldPredelay wants a non-negative float32")
		}
		c.Predelay = v
		c.reinit()
	case FieldReleaseZone:
		v, ok := value.(ReleaseZone)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldReleaseZone wants ReleaseZone")
		}
		c.ReleaseZone = v
		c.reinit()
	case FieldPostgain:
		v, ok := value.(float32)
		if !ok {
			return newErr("Set", KindInvalidValue, "FieldPostgain wants float32")
		}
		c.Postgain = v
		c.reinit()
	case FieldWet:
		v, ok := value.(float32)
		if !ok || v < 0 || v > 1 {
			return newErr("Set", KindInvalidValue, "FieldWet wants a float32 in [0,1]")
		}
		c.Wet = v
		c.reinit()
	case FieldSamplerate:
		v, ok := value.(int)
		if !ok || v <= 0 {
			return newErr("Set", KindInvalidValue, "FieldSamplerate wants a positive int")
		}
		c.Samplerate = v
		c.reinit()
	default:
		return newErr("Set", KindInvalidField, "Compressor has no field %v", field)
	}
	return nil
}

func (c *Compressor) Info() Info {
	return Info{Name: "compressor", Description: "Feed-forward dynamic range compressor with soft knee and adaptive release."}
}
