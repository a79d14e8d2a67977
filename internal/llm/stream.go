package llm

import "context"

// Stream sends req through p and delivers text deltas to onChunk.
// Providers that do not implement Streamer fall back to Generate, in which
// case the whole text arrives as a single chunk.
func Stream(ctx context.Context, p Provider, req Request, onChunk func(delta string)) (*Response, error) {
	if onChunk == nil {
		onChunk = func(string) {}
	}
	if s, ok := p.(Streamer); ok {
		return s.Stream(ctx, req, onChunk)
	}

	resp, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Content) > 0 {
		onChunk(resp.Text())
	}
	return resp, nil
}
