package mock

import "net/http/httptest"

// HTTPTestSmartServer binds a SmartService to an httptest server.
type HTTPTestSmartServer struct {
	*SmartService
	Server *httptest.Server
	Issuer string
}

func NewHTTPTestSmartServer(opts ...Option) (*HTTPTestSmartServer, error) {
	service, err := NewSmartService(opts...)
	if err != nil {
		return nil, err
	}
	server := &HTTPTestSmartServer{
		SmartService: service,
	}
	server.Server = httptest.NewServer(service.Handler())
	service.Issuer = server.Server.URL
	server.Issuer = server.Server.URL
	return server, nil
}

func (s *HTTPTestSmartServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.SmartService = nil
	s.Server = nil
}
