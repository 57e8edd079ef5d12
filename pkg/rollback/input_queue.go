package rollback

// inputQueue holds the inputs of one player. Confirmed inputs are contiguous
// from frame 0; anything later is predicted by repeating the last confirmed one.
type inputQueue struct {
	confirmed     map[Frame]byte
	predictions   map[Frame]byte
	lastConfirmed Frame
	discarded     Frame
}

func newInputQueue() *inputQueue {
	return &inputQueue{
		confirmed:     make(map[Frame]byte),
		predictions:   make(map[Frame]byte),
		lastConfirmed: NullFrame,
	}
}

// confirm records the input of frame. Only the frame right after the last
// confirmed one is accepted. It reports whether the input was accepted and
// whether it differs from the prediction previously handed out for frame.
func (q *inputQueue) confirm(frame Frame, input byte) (accepted bool, mispredicted bool) {
	if frame != q.lastConfirmed+1 {
		return false, false
	}
	q.confirmed[frame] = input
	q.lastConfirmed = frame
	if predicted, ok := q.predictions[frame]; ok {
		delete(q.predictions, frame)
		return true, predicted != input
	}
	return true, false
}

// lastInput returns the last confirmed input, or zero before any.
func (q *inputQueue) lastInput() byte {
	if q.lastConfirmed == NullFrame {
		return 0
	}
	return q.confirmed[q.lastConfirmed]
}

// input returns the input for frame, predicting it when it is not confirmed yet.
func (q *inputQueue) input(frame Frame) (byte, InputStatus) {
	if frame <= q.lastConfirmed {
		return q.confirmed[frame], InputConfirmed
	}
	predicted := q.lastInput()
	q.predictions[frame] = predicted
	return predicted, InputPredicted
}

// get returns a confirmed input.
func (q *inputQueue) get(frame Frame) (byte, bool) {
	in, ok := q.confirmed[frame]
	return in, ok
}

// discardBefore forgets confirmed inputs older than frame.
func (q *inputQueue) discardBefore(frame Frame) {
	if frame > q.lastConfirmed {
		frame = q.lastConfirmed
	}
	for f := q.discarded; f < frame; f++ {
		delete(q.confirmed, f)
		delete(q.predictions, f)
	}
	if frame > q.discarded {
		q.discarded = frame
	}
}
