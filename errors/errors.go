package errors

import "fmt"

// Erros de domínio do núcleo de distribuição/atendimento.
// Os controllers traduzem cada um para mensagem e status HTTP.
var (
	ErrQuantidadeInvalida = fmt.Errorf("quantidade inválida")
	ErrPoolInsuficiente   = fmt.Errorf("clientes insuficientes na categoria")
	ErrJaResolvido        = fmt.Errorf("registro já resolvido")
	ErrNaoEncontrado      = fmt.Errorf("registro não encontrado")
	ErrIndisponivel       = fmt.Errorf("armazenamento indisponível")
)

// DistribuicaoError envolve um erro do núcleo com o contexto do pedido de
// distribuição que o causou.
type DistribuicaoError struct {
	UsuarioID  int64
	Categoria  string
	Quantidade int
	Err        error
}

func (e *DistribuicaoError) Error() string {
	return fmt.Sprintf("distribuição usuario=%d categoria=%s quantidade=%d: %v",
		e.UsuarioID, e.Categoria, e.Quantidade, e.Err)
}

func (e *DistribuicaoError) Unwrap() error {
	return e.Err
}
