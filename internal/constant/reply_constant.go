package constant

// Canned chat replies for the Aurora dialogue flows. Texts are user-facing
// Portuguese and must stay byte-stable: operators reference them verbatim in
// the inspection department's service scripts.

const (
	DefaultCitizenName = "Cidadão(ã)"

	WebhookUsername = "Aurora - Fiscalização Municipal"
	WebhookFooter   = "Via Chatbot WhatsApp"

	// Embed colors (decimal strings, Discord embed format).
	ColorAlert    = "16711680"
	ColorHandoff  = "11111901"
	ColorWarning  = "16776960"
	ColorPositive = "65280"

	// Webhook event titles. The metrics sink is selected by the satisfaction
	// survey marker; everything else goes to the alert sink.
	TitleSatisfactionSurvey = "📊 PESQUISA DE SATISFAÇÃO RECEBIDA"
	TitleHandoffRequested   = "🟣 SOLICITAÇÃO DE ATENDIMENTO HUMANO (HANDOFF)"
	TitleHandoffAutomatic   = "🟣 HANDOFF AUTOMÁTICO POR FALHA DE COMPREENSÃO"
	TitleComplaintLotNoFoto = "🚨 NOVA DENÚNCIA DE LOTE SUJO (SEM FOTOS)"
	TitleComplaintLotFotos  = "🚨 NOVA DENÚNCIA DE LOTE SUJO (COM FOTOS)"
	TitleComplaintCompany   = "🚨 NOVA DENÚNCIA: EMPRESA (POSTURAS)"
	TitleComplaintOccupa    = "🚨 NOVA DENÚNCIA: OCUPAÇÃO IRREGULAR DA VIA"
	SatisfactionMarker      = "PESQUISA DE SATISFAÇÃO"

	MenuOptions = `*Selecione uma opção digitando o número:*
1️⃣ Fazer Denúncia 🚨
2️⃣ Acompanhar Protocolo 📝
3️⃣ Comércio Ambulante (RCA) 📄
4️⃣ Falar com Atendente 💬`

	ReplyComplaintTypeMenu = "Certo. Qual o foco da sua denúncia? 🔎\n\n*Digite o número:* \n1️⃣ Denunciar lote sujo\n2️⃣ Empresa (Posturas)\n3️⃣ Ocupação irregular da via\n\n(Digite *voltar* para retornar ao menu principal.)"

	ReplyTrackProtocolPrompt = "Para acompanhar sua solicitação, por favor, *digite o número do protocolo* (Ex: 2025.12.08.1.0001). 🔍\n\n(Digite **voltar** para retornar ao menu principal.)"

	ReplyDocumentSent    = "✅ O documento RCA.pdf foi enviado. Digite *menu* ou *voltar* para ver as opções novamente."
	ReplyDocumentMissing = "Desculpe, não consegui encontrar o documento *RCA.pdf* na pasta do bot. 😔 Digite *menu* ou *voltar* para ver as opções novamente."
	CaptionDocumentRCA   = "*Segue o RCA (Regulamento de Comércio Ambulante) para sua consulta.* 🛍️"

	ReplyHandoffRequested = "Aguarde um momento, por favor. Encaminhando sua conversa para um de nossos atendentes. 📞 \n\n*Por favor, descreva brevemente sua demanda para que o atendente possa ajudá-lo(a) melhor.* (Digite *menu* ou *voltar* para cancelar)."

	ReplyHandoffAutomatic = "Desculpe, não consegui entender o que você precisa. 😥 Para garantir que você seja atendido(a) corretamente, estou encaminhando sua conversa para um de nossos atendentes. 🧑‍💻 \n\n*Por favor, descreva brevemente sua demanda para que o atendente possa ajudá-lo(a) melhor.* (Digite *menu* ou *voltar* para cancelar)."

	ReplyInvalidComplaintOption = "Opção inválida. ⚠️ Por favor, digite *1, 2 ou 3* ou *voltar* para ver as opções de denúncia."
	ReplyInvalidYesNo           = "Resposta inválida. ❌ Por favor, digite *SIM* ou *NÃO*.\n\n(Digite *voltar* para retornar ao menu principal.)"
	ReplyInvalidRating          = "Opção inválida. ❗ Por favor, digite uma nota de *1 (Ruim) a 5 (Excelente)*."

	ReplyAddressPromptLot = "Por favor, envie o *Endereço Completo* do lote (Rua/Avenida, número, bairro, distrito e local de referência). 📍"

	ReplyAddressPromptCompany = "Por favor, envie o *Endereço Completo* da empresa (Rua/Avenida, número, bairro e local de referência). 📍"

	ReplyPhotoQuestion = "✅ Endereço registrado. \nVocê deseja enviar *FOTOS* da ocorrência agora? (Máximo de 5 imagens)\n*Digite SIM ou NÃO.*"

	ReplySendPhotosNow = "Certo! Por favor, envie as fotos (até 5) agora. 📸 Quando terminar de enviar, *digite OK* para prosseguir."

	ReplyCompanyNamePrompt   = "Endereço registrado. ✅ Agora, por favor, digite o *Nome da Empresa* denunciada. 🏢"
	ReplyCompanyReasonPrompt = "✅ Nome da Empresa registrado. Por favor, *descreva o motivo da denúncia* (o que está irregular). Após descrever, *digite OK* para gerar o protocolo."
	ReplyCompanyKeepTyping   = "Continue descrevendo ou, quando terminar, *digite OK* para gerar o protocolo."

	ReplyTrackFormatError = "O formato do protocolo está incorreto. ❌ Por favor, digite no formato AAAA.MM.DD.T.NNNN (Ex: 2025.12.08.1.0001). Digite *menu* ou *voltar* para retornar."

	ReplySurveyThanks = "Agradecemos a sua avaliação! Seu feedback é muito importante para nós. 🙏 Digite *menu* ou *voltar* para retornar."

	DefaultProtocolStatus  = "Em Análise pelo Setor de Fiscalização"
	DefaultProtocolDetails = "Solicite um atendente para mais informações."

	SurveyInvite = "*Para finalizar, por favor, avalie nosso atendimento. Digite uma nota de 1 (Ruim) a 5 (Excelente).* ⭐"
)

// Formatted replies that embed runtime values.
const (
	GreetingFmt = "👋 Olá, *%s*, Seja Bem-Vindo(a)! 🤖 Sou a *AURORA*, Assistente Virtual do Setor de Fiscalização Municipal de Posturas. 🔹"

	CallNoticeFmt = "📞 *Atenção, *%s*!* Este é um número de atendimento *Business* e aceita somente mensagens de texto. Selecione a opção desejada no menu."

	ReplyTypeChosenFmt = "Você escolheu *%s*. "

	ReplyOccupationRegisteredFmt = "Sua denúncia (Protocolo *%s*) foi pré-registrada. ✅ Digite *menu* ou *voltar* para retornar."

	ReplyCompanyRegisteredFmt = "Obrigado! Recebemos sua denúncia. ✅ O seu número de *Protocolo é: %s*. Use este número na Opção 2 para acompanhamento.\n            \n" + SurveyInvite

	ReplyLotNoPhotosFmt = "Entendido. Sua denúncia foi PRÉ-REGISTRADA. ✅ O seu número de *Protocolo é: %s*. Use este número na Opção 2 para acompanhamento.\n\n" + SurveyInvite

	ReplyLotWithPhotosFmt = "Obrigado! Recebemos suas informações e fotos. ✅ O seu número de *Protocolo é: %s*. \n            \n" + SurveyInvite

	ReplyTrackFoundFmt = "Protocolo *%s* encontrado! ✅ Status atual: *%s*. Detalhes: %s. Para mais detalhes, acesse: [Link de Consulta do Protocolo].\n            \n" + SurveyInvite

	ReplyUnknownFmt = "Desculpe, não entendi. 🤔 Você pode digitar *menu* ou *voltar* para ver as opções novamente? (Tentativa %d de 3 antes do atendimento humano)."
)
